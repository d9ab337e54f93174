package gql

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const appSyncSigningName = "appsync"

type iamSigner struct {
	credentials aws.CredentialsProvider
	region      string
	signer      *v4.Signer
	now         func() time.Time
}

func newIAMSigner(credentials aws.CredentialsProvider, region string) *iamSigner {
	return &iamSigner{
		credentials: credentials,
		region:      region,
		signer:      v4.NewSigner(),
		now:         time.Now,
	}
}

func (s *iamSigner) sign(req *http.Request) error {
	if s.credentials == nil {
		return fmt.Errorf("sign graphql request: no AWS credentials provider")
	}

	payload, err := readBody(req)
	if err != nil {
		return fmt.Errorf("sign graphql request: %w", err)
	}
	sum := sha256.Sum256(payload)

	creds, err := s.credentials.Retrieve(req.Context())
	if err != nil {
		return fmt.Errorf("retrieve AWS credentials: %w", err)
	}

	if err := s.signer.SignHTTP(
		req.Context(),
		creds,
		req,
		hex.EncodeToString(sum[:]),
		appSyncSigningName,
		s.region,
		s.now(),
	); err != nil {
		return fmt.Errorf("sign graphql request: %w", err)
	}

	return nil
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return []byte{}, nil
	}

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(payload))

	return payload, nil
}
