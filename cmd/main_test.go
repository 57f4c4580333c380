package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"payments/internal/cardvalidator"
	"payments/internal/config"
	"payments/pkg/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newCommandForTest() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	return cmd, &out
}

func fixedValidator() *cardvalidator.Service {
	opts := cardvalidator.DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	return cardvalidator.New(opts)
}

func TestRunValidate_Valid(t *testing.T) {
	cmd, out := newCommandForTest()

	err := runValidate(cmd, fixedValidator(), domain.Card{
		Owner: "John Doe", Number: "371449635398431", ExpiryDate: "01/28", CVC: "1234",
	})
	require.NoError(t, err)

	var verdict domain.Verdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &verdict))
	require.True(t, verdict.Valid)
	require.Equal(t, domain.NetworkAmericanExpress, verdict.Network)
	require.Empty(t, verdict.Errors)
}

func TestRunValidate_Invalid(t *testing.T) {
	cmd, out := newCommandForTest()

	err := runValidate(cmd, fixedValidator(), domain.Card{Number: "4111111111111111", ExpiryDate: "12/20"})

	var exit exitCodeError
	require.True(t, errors.As(err, &exit))
	require.Equal(t, 1, int(exit))

	var verdict domain.Verdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &verdict))
	require.False(t, verdict.Valid)
	require.Equal(t, []string{
		"Card owner is required.",
		"Card CVC is required.",
		"Card has expired.",
	}, verdict.Errors)
}

func TestValidateCommand_Flags(t *testing.T) {
	cfg := &config.Config{}
	cfg.Validator.MinExpiryYear = 20
	cfg.Validator.MaxExpiryYear = 99

	cmd := validateCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--owner", "Jane Roe", "--number", "5500000000000004", "--expiry", "10/45", "--cvc", "321"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	require.Contains(t, out.String(), `"MasterCard"`)
}

func TestSignToken(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	now := time.Now()
	signed, err := signToken(string(privPEM), "client-1", time.Hour, now)
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) { return &priv.PublicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	require.NoError(t, err)
	require.Equal(t, "client-1", claims.Subject)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)

	_, err = signToken("not a key", "client-1", time.Hour, now)
	require.Error(t, err)
}
