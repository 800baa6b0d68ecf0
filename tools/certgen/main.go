// Package main generates a development Certificate Authority (CA) and a server
// certificate signed by it, writing them to files under the "certs" directory.
// An existing CA in that directory is reused so clients that already trust it
// keep working.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/GophForms/internal/certgen"
)

const caCommonName = "GophForms Dev CA"

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs for the server certificate")
	flag.Parse()

	if err := run(*dir, splitHosts(*hosts)); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✅ Certificates generated into ./%s\n", *dir)
}

func run(dir string, hosts []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	caCertPath := filepath.Join(dir, "ca.crt")
	caKeyPath := filepath.Join(dir, "ca.key")

	// 1. Load the CA, or create it on first run
	caCert, caKey, err := certgen.LoadCACredentials(caCertPath, caKeyPath)
	if errors.Is(err, fs.ErrNotExist) {
		newCert, newKey, genErr := certgen.GenerateCA(caCommonName)
		if genErr != nil {
			return genErr
		}
		keyPEM, encErr := certgen.EncodeKey(newKey)
		if encErr != nil {
			return encErr
		}
		if err := certgen.WriteCertAndKey(caCertPath, caKeyPath, certgen.EncodeCert(newCert.Raw), keyPEM); err != nil {
			return err
		}
		caCert, caKey, err = newCert, newKey, nil
	}
	if err != nil {
		return err
	}

	// 2. Generate server certificate/key signed by CA
	certPEM, keyPEM, err := certgen.GenerateServerCertificate(hosts, caCert, caKey)
	if err != nil {
		return err
	}
	return certgen.WriteCertAndKey(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"), certPEM, keyPEM)
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
