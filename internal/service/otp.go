package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	otpTTL = 10 * time.Minute
	otpMin = 100000
	otpMax = 999999
)

// generateOTP devuelve un codigo uniforme de 6 digitos entre 100000 y 999999.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
