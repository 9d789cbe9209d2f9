package services

import (
	"strconv"

	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/utils"
)

const (
	minPin = 1000
	maxPin = 9999
)

// randomPinGenerator draws PINs uniformly from [1000, 9999] using crypto/rand.
// It does not check whether a PIN is already open.
type randomPinGenerator struct{}

// NewPinGenerator returns the default PinGenerator.
func NewPinGenerator() portssvc.PinGenerator {
	return randomPinGenerator{}
}

func (randomPinGenerator) Generate() (string, error) {
	n, err := utils.SecureIntInRange(minPin, maxPin)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

var _ portssvc.PinGenerator = randomPinGenerator{}
