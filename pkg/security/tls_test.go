package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

// selfSigned writes a certificate pair valid until notAfter into dir.
func selfSigned(t *testing.T, dir string, notAfter time.Time) (certFile, keyFile string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "videotube.local"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
		DNSNames:     []string{"videotube.local"},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	assert.Nil(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	assert.Nil(t, err)

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	assert.Nil(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	assert.Nil(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}

func TestServerTLS(t *testing.T) {
	dir := t.TempDir()
	expiry := time.Now().Add(48 * time.Hour).Truncate(time.Second).UTC()
	cert, key := selfSigned(t, dir, expiry)

	opts := TLSOptions{CertFile: cert, KeyFile: key}
	assert.True(t, opts.Enabled())

	config, err := ServerTLS(opts)
	assert.Nil(t, err)
	assert.DeepEqual(t, uint16(tls.VersionTLS12), config.MinVersion)
	assert.DeepEqual(t, tls.NoClientCert, config.ClientAuth)

	notAfter, err := NotAfter(config)
	assert.Nil(t, err)
	assert.True(t, notAfter.Equal(expiry))

	t.Run("client certificates", func(t *testing.T) {
		opts.CAFile = cert
		config, err := ServerTLS(opts)
		assert.Nil(t, err)
		assert.DeepEqual(t, tls.RequireAndVerifyClientCert, config.ClientAuth)
	})

	t.Run("bad CA file", func(t *testing.T) {
		bad := filepath.Join(dir, "ca.pem")
		assert.Nil(t, os.WriteFile(bad, []byte("not a certificate"), 0o600))
		_, err := ServerTLS(TLSOptions{CertFile: cert, KeyFile: key, CAFile: bad})
		assert.NotNil(t, err)
	})
}

func TestServerTLSMissingFiles(t *testing.T) {
	assert.False(t, TLSOptions{CertFile: "cert.pem"}.Enabled())
	_, err := ServerTLS(TLSOptions{CertFile: "missing.pem", KeyFile: "missing.key"})
	assert.NotNil(t, err)

	_, err = NotAfter(&tls.Config{})
	assert.NotNil(t, err)
}
