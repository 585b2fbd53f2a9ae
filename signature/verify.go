package signature

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"os"
	"strings"

	"github.com/mkfw/hexcraft/memimage"
)

// Verify computes the payload for m over img and checks it against
// signatureInfo (a file path or inline hex string) using keyInfo's public
// key material.
func Verify(img *memimage.Image, m Method, keyInfo, signatureInfo string) error {
	payload := Payload(img, m)
	sig, err := loadSignatureBytes(signatureInfo)
	if err != nil {
		return err
	}
	return verifyPayload(m, payload, keyInfo, sig)
}

func verifyPayload(m Method, payload []byte, keyInfo string, sig []byte) error {
	switch m {
	case RsaPkcs1v15Sha256, RsaPkcs1v15Sha256WithMetadata:
		key, err := loadRSAPublicKey(keyInfo)
		if err != nil {
			return err
		}
		digest := sha256.Sum256(payload)
		if err := rsa.VerifyPKCS1v15(key, signatureHash, digest[:], sig); err != nil {
			return &VerificationError{Reason: err.Error()}
		}
		return nil
	case RsaPssSha256, RsaPssSha256WithMetadata:
		key, err := loadRSAPublicKey(keyInfo)
		if err != nil {
			return err
		}
		digest := sha256.Sum256(payload)
		if err := rsa.VerifyPSS(key, signatureHash, digest[:], sig, nil); err != nil {
			return &VerificationError{Reason: err.Error()}
		}
		return nil
	case Ed25519Ph, Ed25519PhWithMetadata:
		key, err := loadEd25519PublicKey(keyInfo)
		if err != nil {
			return err
		}
		prehashed := sha512.Sum512(payload)
		if err := ed25519.VerifyWithOptions(key, prehashed[:], sig, &ed25519.Options{Hash: crypto.SHA512}); err != nil {
			return &VerificationError{Reason: "ed25519ph check failed"}
		}
		return nil
	case Ed25519Sha512Data, Ed25519Sha512DataWithMetadata:
		key, err := loadEd25519PublicKey(keyInfo)
		if err != nil {
			return err
		}
		digest := sha512.Sum512(payload)
		if !ed25519.Verify(key, digest[:], sig) {
			return &VerificationError{Reason: "ed25519 digest check failed"}
		}
		return nil
	}
	return &UnsupportedMethodError{Method: -1}
}

func loadSignatureBytes(signatureInfo string) ([]byte, error) {
	source := strings.TrimSpace(signatureInfo)
	if source == "" {
		return nil, &SignatureLoadError{Reason: "signature info is empty"}
	}
	if data, err := os.ReadFile(source); err == nil {
		return data, nil
	}
	return parseHexSignature(source)
}

func parseHexSignature(s string) ([]byte, error) {
	var cleaned []byte
	for _, r := range s {
		if isHexDigit(r) {
			cleaned = append(cleaned, byte(r))
		}
	}
	if len(cleaned) == 0 {
		return nil, &SignatureLoadError{Reason: "signature is neither an existing file path nor a hex string"}
	}
	if len(cleaned)%2 != 0 {
		return nil, &SignatureLoadError{Reason: "signature hex string must have even length"}
	}
	out := make([]byte, len(cleaned)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexValue(cleaned[i*2])
		lo, ok2 := hexValue(cleaned[i*2+1])
		if !ok1 || !ok2 {
			return nil, &SignatureLoadError{Reason: "invalid signature hex string"}
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func isHexDigit(r rune) bool {
	_, ok := hexValue(byte(r))
	return ok
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
