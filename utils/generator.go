package utils

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ftld/certforge/models"
	"gorm.io/gorm"
)

const codePrefix = "FTLD"
const codeSegmentLength = 4
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateVerificationCode produces a code of the form FTLD-XXXX-XXXX and
// retries until it finds one no existing certificate carries. The unique
// index on verification_code backstops the rare concurrent race.
func GenerateVerificationCode(tx *gorm.DB) (string, error) {
	for {
		code := fmt.Sprintf("%s-%s-%s", codePrefix, randomSegment(), randomSegment())

		var cert models.Certificate
		err := tx.Where("verification_code = ?", code).First(&cert).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code, nil
			}
			return "", err
		}
	}
}

func randomSegment() string {
	b := make([]byte, codeSegmentLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
