// Package cryptor implements the password-based cipher used for resource files.
//
// The construction is fixed so that files encrypted by any compatible
// implementation can be decrypted by any other given the same password and salt:
//
//	key        = PBKDF2-HMAC-SHA256(password, salt, 65536 iterations, 32 bytes)
//	ciphertext = AES-256-CBC(PKCS#7(plaintext), key, iv = 16 zero bytes)
//	encoded    = base64.StdEncoding(ciphertext)
//
// The IV is constant, so identical plaintexts under the same password and salt
// produce identical ciphertexts. Reusing a salt across distinct plaintexts under
// one password is unsafe. Ciphertexts carry no authentication tag: a wrong
// credential is usually, but not always, rejected by the padding check.
//
// Applications consuming encrypted resources at runtime call Decrypt or
// DecryptFromString with the same credential used at build time.
package cryptor
