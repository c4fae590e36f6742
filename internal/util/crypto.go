package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// ----------------- AES-256-GCM 加密/解密（用于审计日志字段） -----------------

// deriveKey 始终生成 32 字节 key，避免对配置长度过于敏感。
func deriveKey(keyStr string) []byte {
	sum := sha256.Sum256([]byte(keyStr))
	return sum[:]
}

// EncryptAES 使用 AES-256-GCM 加密数据，返回 nonce+ciphertext。
func EncryptAES(keyStr string, plaintext []byte) ([]byte, error) {
	key := deriveKey(keyStr)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)
	// 前面拼上 nonce，解密时可以拆回来
	return append(nonce, ciphertext...), nil
}

// DecryptAES 使用 AES-256-GCM 解密数据（输入必须是 nonce+ciphertext）。
func DecryptAES(keyStr string, data []byte) ([]byte, error) {
	key := deriveKey(keyStr)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	ns := aesgcm.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := data[:ns], data[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
