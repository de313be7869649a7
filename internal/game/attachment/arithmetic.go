package attachment

// CodeValue is any unsigned 32-bit code type, such as a firearm base code.
type CodeValue interface {
	~uint32
}

// AddCode returns id's code plus n. Addition is commutative, so this covers
// both operand orders. The result wraps modulo 2^32.
func AddCode[N CodeValue](id Identifier, n N) uint32 {
	return id.code + uint32(n)
}

// SubtractCode returns id's code minus n, wrapping modulo 2^32.
func SubtractCode[N CodeValue](id Identifier, n N) uint32 {
	return id.code - uint32(n)
}

// SubtractFromCode returns n minus id's code, wrapping modulo 2^32.
func SubtractFromCode[N CodeValue](n N, id Identifier) uint32 {
	return uint32(n) - id.code
}
