// Package idgen generates the format-shaped identifiers stamped onto test
// records: registration plates, engine and chassis numbers, and GSTINs.
package idgen

import "math/rand"

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	alphanumeric = upperLetters + digits
)

// DefaultRTO is the registration office prefix for generated plates.
const DefaultRTO = "KA01"

// RegistrationNumber generates an RTO-format plate: two letters, two digits,
// two letters, four digits.
func RegistrationNumber(rng *rand.Rand) string {
	return DefaultRTO + randomFrom(rng, upperLetters, 2) + randomFrom(rng, digits, 4)
}

// EngineNumber generates a random 10-character alphanumeric engine number.
func EngineNumber(rng *rand.Rand) string {
	return randomFrom(rng, alphanumeric, 10)
}

// ChassisNumber generates a 17-character alphanumeric chassis number.
func ChassisNumber(rng *rand.Rand) string {
	return randomFrom(rng, alphanumeric, 17)
}

// GSTIN generates a format-shaped GSTIN from a PAN: state code 27, the PAN,
// entity digit, the letter Z, and a check digit. It is shaped like a real
// GSTIN but carries no valid checksum.
func GSTIN(rng *rand.Rand, pan string) string {
	return "27" + pan + randomFrom(rng, digits, 1) + "Z" + randomFrom(rng, digits, 1)
}

func randomFrom(rng *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
