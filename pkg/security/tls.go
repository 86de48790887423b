// Package security builds the TLS configuration of the API server.
package security

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"time"

	"github.com/pkg/errors"
)

type TLSOptions struct {
	CertFile string
	KeyFile  string
	// CAFile 非空时要求并校验客户端证书
	CAFile string
}

// Enabled reports whether a certificate pair is configured.
func (o TLSOptions) Enabled() bool {
	return o.CertFile != "" && o.KeyFile != ""
}

// ServerTLS loads the certificate pair. TLS 1.2 is the minimum version.
func ServerTLS(o TLSOptions) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server certificates")
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12, // 强制使用TLS 1.2+
		CipherSuites: []uint16{
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
		},
	}

	if o.CAFile != "" {
		caCert, err := os.ReadFile(o.CAFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CA certificate")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA certificate")
		}
		config.ClientCAs = pool
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return config, nil
}

// NotAfter returns the expiry of the leaf certificate of config.
func NotAfter(config *tls.Config) (time.Time, error) {
	if len(config.Certificates) == 0 || len(config.Certificates[0].Certificate) == 0 {
		return time.Time{}, errors.New("no certificates found")
	}
	leaf, err := x509.ParseCertificate(config.Certificates[0].Certificate[0])
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse leaf certificate")
	}
	return leaf.NotAfter, nil
}
