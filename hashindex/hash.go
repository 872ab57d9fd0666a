package hashindex

// Hash sums the byte values of key and reduces it modulo buckets.
// Collisions are expected, chains take care of them. Without buckets every
// key maps to 0.
func Hash(key string, buckets int) int {
	if buckets <= 0 {
		return 0
	}
	var h uint
	for i := 0; i < len(key); i++ {
		h += uint(key[i])
	}
	return int(h % uint(buckets))
}
