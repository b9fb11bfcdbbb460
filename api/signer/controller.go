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

package signer

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Signatory signs messages with the keys it holds.
type Signatory interface {
	PublicKey(pkh identifier.PublicKeyHash) (identifier.PublicKey, error)
	Sign(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error)
}

// Controller implements the HTTP protocol of a Tezos remote signer.
type Controller struct {
	signatory Signatory
	validate  *validator.Validate
}

func NewController(signatory Signatory) (*Controller, error) {

	validate := validator.New()
	err := validate.RegisterValidation("pkh", func(fl validator.FieldLevel) bool {
		_, err := identifier.ParsePublicKeyHash(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not register key hash validation: %w", err)
	}

	c := Controller{
		signatory: signatory,
		validate:  validate,
	}

	return &c, nil
}

// Register adds the routes of the controller to an echo server.
func (c *Controller) Register(e *echo.Echo) {
	e.GET("/keys/:pkh", c.GetPublicKey)
	e.POST("/keys/:pkh", c.Sign)
	e.GET("/authorized_keys", c.GetAuthorizedKeys)
}

// GetPublicKey returns the public key with the hash given in the path.
func (c *Controller) GetPublicKey(ctx echo.Context) error {

	req := KeyRequest{
		Key: ctx.Param("pkh"),
	}
	err := c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pkh, err := identifier.ParsePublicKeyHash(req.Key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pk, err := c.signatory.PublicKey(pkh)
	if err != nil {
		return httpError(err)
	}

	res := PublicKeyResponse{
		PublicKey: pk.String(),
	}

	return ctx.JSON(http.StatusOK, res)
}

// Sign signs the hexadecimal bytes of the JSON string in the request body
// with the key whose hash is given in the path.
func (c *Controller) Sign(ctx echo.Context) error {

	var data string
	err := json.NewDecoder(ctx.Request().Body).Decode(&data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not decode request body: %s", err))
	}

	req := SignRequest{
		Key:  ctx.Param("pkh"),
		Data: data,
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pkh, err := identifier.ParsePublicKeyHash(req.Key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	message, err := hex.DecodeString(req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sig, err := c.signatory.Sign(pkh, message)
	if err != nil {
		return httpError(err)
	}

	res := SignatureResponse{
		Signature: sig.String(),
	}

	return ctx.JSON(http.StatusOK, res)
}

// GetAuthorizedKeys reports that requests do not need to be authenticated.
func (c *Controller) GetAuthorizedKeys(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, AuthorizedKeysResponse{})
}

func httpError(err error) error {

	var unknown failure.UnknownKey
	var forbidden failure.ForbiddenOperation
	var stale failure.StaleWatermark
	var (
		invalidLength   failure.InvalidLength
		truncated       failure.TruncatedOperation
		unknownTag      failure.UnknownTag
		unknownKind     failure.UnknownOperationKind
		malformedNumber failure.MalformedNumber
		malformedExpr   failure.MalformedExpression
		invalidValue    failure.InvalidValue
	)

	switch {
	case errors.As(err, &unknown):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &forbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &stale):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &invalidLength),
		errors.As(err, &truncated),
		errors.As(err, &unknownTag),
		errors.As(err, &unknownKind),
		errors.As(err, &malformedNumber),
		errors.As(err, &malformedExpr),
		errors.As(err, &invalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
