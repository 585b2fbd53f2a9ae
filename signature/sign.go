package signature

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/mkfw/hexcraft/checksum"
	"github.com/mkfw/hexcraft/memimage"
)

// Sign computes the payload for m over img, signs it with the key material
// named by keyInfo, writes the signature to target (unless target is a
// file target, which Sign rejects), and returns the signature bytes.
func Sign(img *memimage.Image, m Method, keyInfo string, target checksum.Target) ([]byte, error) {
	payload := Payload(img, m)
	sig, err := signPayload(m, payload, keyInfo)
	if err != nil {
		return nil, err
	}
	if err := Place(img, target, sig); err != nil {
		return nil, err
	}
	return sig, nil
}

func signPayload(m Method, payload []byte, keyInfo string) ([]byte, error) {
	switch m {
	case RsaPkcs1v15Sha256, RsaPkcs1v15Sha256WithMetadata:
		key, err := loadRSAPrivateKey(keyInfo)
		if err != nil {
			return nil, err
		}
		digest := sha256.Sum256(payload)
		return rsa.SignPKCS1v15(rand.Reader, key, signatureHash, digest[:])
	case RsaPssSha256, RsaPssSha256WithMetadata:
		key, err := loadRSAPrivateKey(keyInfo)
		if err != nil {
			return nil, err
		}
		digest := sha256.Sum256(payload)
		return rsa.SignPSS(rand.Reader, key, signatureHash, digest[:], nil)
	case Ed25519Ph, Ed25519PhWithMetadata:
		key, err := loadEd25519PrivateKey(keyInfo)
		if err != nil {
			return nil, err
		}
		prehashed := sha512.Sum512(payload)
		return key.Sign(rand.Reader, prehashed[:], &ed25519.Options{Hash: crypto.SHA512})
	case Ed25519Sha512Data, Ed25519Sha512DataWithMetadata:
		key, err := loadEd25519PrivateKey(keyInfo)
		if err != nil {
			return nil, err
		}
		digest := sha512.Sum512(payload)
		return ed25519.Sign(key, digest[:]), nil
	}
	return nil, &UnsupportedMethodError{Method: -1}
}
