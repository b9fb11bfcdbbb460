// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package signer_test

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/api/signer"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/testing/mocks"
)

func TestController_GetPublicKey(t *testing.T) {
	tests := []struct {
		desc string
		pkh  string

		publicKey func(identifier.PublicKeyHash) (identifier.PublicKey, error)

		wantStatus   int
		wantResponse *signer.PublicKeyResponse
		wantErr      assert.ErrorAssertionFunc
	}{
		{
			desc: "nominal case",
			pkh:  mocks.GenericKeyHash.String(),

			publicKey: func(pkh identifier.PublicKeyHash) (identifier.PublicKey, error) {
				assert.Equal(t, mocks.GenericKeyHash, pkh)
				return mocks.GenericPublicKey, nil
			},

			wantStatus:   http.StatusOK,
			wantResponse: &signer.PublicKeyResponse{PublicKey: mocks.GenericPublicKey.String()},
			wantErr:      assert.NoError,
		},
		{
			desc: "invalid key hash",
			pkh:  "tz1notakeyhash",

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "unknown key",
			pkh:  mocks.GenericKeyHash.String(),

			publicKey: func(pkh identifier.PublicKeyHash) (identifier.PublicKey, error) {
				return identifier.PublicKey{}, failure.UnknownKey{Key: pkh.String()}
			},

			wantStatus: http.StatusNotFound,
			wantErr:    assert.Error,
		},
		{
			desc: "internal error",
			pkh:  mocks.GenericKeyHash.String(),

			publicKey: func(identifier.PublicKeyHash) (identifier.PublicKey, error) {
				return identifier.PublicKey{}, mocks.GenericError
			},

			wantStatus: http.StatusInternalServerError,
			wantErr:    assert.Error,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/keys/"+test.pkh, nil)
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(req, rec)
			ctx.SetPath("/keys/:pkh")
			ctx.SetParamNames("pkh")
			ctx.SetParamValues(test.pkh)

			signatory := mocks.BaselineSignatory(t)
			if test.publicKey != nil {
				signatory.PublicKeyFunc = test.publicKey
			}
			c, err := signer.NewController(signatory)
			require.NoError(t, err)

			err = c.GetPublicKey(ctx)
			test.wantErr(t, err)

			if test.wantStatus != http.StatusOK {
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, test.wantStatus, httpErr.Code)
			} else {
				assert.Equal(t, test.wantStatus, rec.Code)
			}

			if test.wantResponse != nil {
				var got signer.PublicKeyResponse
				err = json.NewDecoder(rec.Body).Decode(&got)
				require.NoError(t, err)
				assert.Equal(t, test.wantResponse, &got)
			}
		})
	}
}

func TestController_Sign(t *testing.T) {
	message := []byte{0x03, 0xca, 0xfe}
	body := `"` + hex.EncodeToString(message) + `"`

	tests := []struct {
		desc string
		pkh  string
		body string

		sign func(identifier.PublicKeyHash, []byte) (identifier.Signature, error)

		wantStatus   int
		wantResponse *signer.SignatureResponse
		wantErr      assert.ErrorAssertionFunc
	}{
		{
			desc: "nominal case",
			pkh:  mocks.GenericKeyHash.String(),
			body: body,

			sign: func(pkh identifier.PublicKeyHash, msg []byte) (identifier.Signature, error) {
				assert.Equal(t, mocks.GenericKeyHash, pkh)
				assert.Equal(t, message, msg)
				return mocks.GenericSignature, nil
			},

			wantStatus:   http.StatusOK,
			wantResponse: &signer.SignatureResponse{Signature: mocks.GenericSignature.String()},
			wantErr:      assert.NoError,
		},
		{
			desc: "body is not a JSON string",
			pkh:  mocks.GenericKeyHash.String(),
			body: `{"data":"03cafe"}`,

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "body is not hexadecimal",
			pkh:  mocks.GenericKeyHash.String(),
			body: `"not hex"`,

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "body has odd length",
			pkh:  mocks.GenericKeyHash.String(),
			body: `"03caf"`,

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "invalid key hash",
			pkh:  "edpknotakeyhash",
			body: body,

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "forbidden operation",
			pkh:  mocks.GenericKeyHash.String(),
			body: body,

			sign: func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
				return identifier.Signature{}, failure.ForbiddenOperation{Kind: "transaction"}
			},

			wantStatus: http.StatusForbidden,
			wantErr:    assert.Error,
		},
		{
			desc: "stale watermark",
			pkh:  mocks.GenericKeyHash.String(),
			body: body,

			sign: func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
				return identifier.Signature{}, failure.StaleWatermark{Level: mocks.GenericLevel}
			},

			wantStatus: http.StatusConflict,
			wantErr:    assert.Error,
		},
		{
			desc: "malformed operation",
			pkh:  mocks.GenericKeyHash.String(),
			body: body,

			sign: func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
				return identifier.Signature{}, failure.TruncatedOperation{Field: "branch"}
			},

			wantStatus: http.StatusBadRequest,
			wantErr:    assert.Error,
		},
		{
			desc: "internal error",
			pkh:  mocks.GenericKeyHash.String(),
			body: body,

			sign: func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
				return identifier.Signature{}, mocks.GenericError
			},

			wantStatus: http.StatusInternalServerError,
			wantErr:    assert.Error,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/keys/"+test.pkh, strings.NewReader(test.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(req, rec)
			ctx.SetPath("/keys/:pkh")
			ctx.SetParamNames("pkh")
			ctx.SetParamValues(test.pkh)

			signatory := mocks.BaselineSignatory(t)
			if test.sign != nil {
				signatory.SignFunc = test.sign
			}
			c, err := signer.NewController(signatory)
			require.NoError(t, err)

			err = c.Sign(ctx)
			test.wantErr(t, err)

			if test.wantStatus != http.StatusOK {
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, test.wantStatus, httpErr.Code)
			} else {
				assert.Equal(t, test.wantStatus, rec.Code)
			}

			if test.wantResponse != nil {
				var got signer.SignatureResponse
				err = json.NewDecoder(rec.Body).Decode(&got)
				require.NoError(t, err)
				assert.Equal(t, test.wantResponse, &got)
			}
		})
	}
}

func TestController_GetAuthorizedKeys(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/authorized_keys", nil)
		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(req, rec)

		c, err := signer.NewController(mocks.BaselineSignatory(t))
		require.NoError(t, err)

		err = c.GetAuthorizedKeys(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})
}

func TestController_Register(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		c, err := signer.NewController(mocks.BaselineSignatory(t))
		require.NoError(t, err)
		c.Register(e)

		req := httptest.NewRequest(http.MethodGet, "/keys/"+mocks.GenericKeyHash.String(), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"public_key":"`+mocks.GenericPublicKey.String()+`"}`, rec.Body.String())
	})
}
