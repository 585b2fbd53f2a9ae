package signature

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"strings"
)

// loadKeyMaterial resolves keyInfo to raw bytes, using only the text before
// its first comma: the contents of the file at that path if one exists,
// otherwise the text's own bytes (so inline PEM works). Hex-encoded key
// text is not decoded.
func loadKeyMaterial(keyInfo string) ([]byte, error) {
	source := strings.TrimSpace(strings.SplitN(keyInfo, ",", 2)[0])
	if source == "" {
		return nil, &KeyLoadError{Reason: "missing key info"}
	}
	if data, err := os.ReadFile(source); err == nil {
		return data, nil
	}
	return []byte(source), nil
}

func pemBlock(material []byte) *pem.Block {
	block, _ := pem.Decode(material)
	return block
}

func loadRSAPrivateKey(keyInfo string) (*rsa.PrivateKey, error) {
	material, err := loadKeyMaterial(keyInfo)
	if err != nil {
		return nil, err
	}

	der := material
	if block := pemBlock(material); block != nil {
		der = block.Bytes
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		if rsaKey, ok := key.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	return nil, &KeyLoadError{Reason: "unable to parse RSA private key"}
}

func loadRSAPublicKey(keyInfo string) (*rsa.PublicKey, error) {
	material, err := loadKeyMaterial(keyInfo)
	if err != nil {
		return nil, err
	}

	der := material
	if block := pemBlock(material); block != nil {
		der = block.Bytes
	}

	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		if rsaKey, ok := key.(*rsa.PublicKey); ok {
			return rsaKey, nil
		}
	}
	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return key, nil
	}
	if cert, err := x509.ParseCertificate(der); err == nil {
		if rsaKey, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			return rsaKey, nil
		}
	}
	return nil, &KeyLoadError{Reason: "unable to parse RSA public key or certificate"}
}

func loadEd25519PrivateKey(keyInfo string) (ed25519.PrivateKey, error) {
	material, err := loadKeyMaterial(keyInfo)
	if err != nil {
		return nil, err
	}

	der := material
	if block := pemBlock(material); block != nil {
		der = block.Bytes
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, &KeyLoadError{Reason: "unable to parse ed25519 private key"}
	}
	edKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, &KeyLoadError{Reason: "key material is not an ed25519 private key"}
	}
	return edKey, nil
}

func loadEd25519PublicKey(keyInfo string) (ed25519.PublicKey, error) {
	material, err := loadKeyMaterial(keyInfo)
	if err != nil {
		return nil, err
	}

	der := material
	if block := pemBlock(material); block != nil {
		der = block.Bytes
	}

	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		if edKey, ok := key.(ed25519.PublicKey); ok {
			return edKey, nil
		}
	}
	if cert, err := x509.ParseCertificate(der); err == nil {
		if edKey, ok := cert.PublicKey.(ed25519.PublicKey); ok {
			return edKey, nil
		}
	}
	return nil, &KeyLoadError{Reason: "unable to parse ed25519 public key or certificate"}
}

// signatureHash pins the crypto.Hash identifier used for RSA signing/verifying,
// kept as a standalone constant so both sign.go and verify.go share one
// source of truth for the hash algorithm.
const signatureHash = crypto.SHA256
