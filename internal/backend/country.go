// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/record"
)

// MsgSelectCountry is shown when no country was chosen.
const MsgSelectCountry = "Please select a country first."

// ValidateCountryName fails with a validation error when no country was chosen.
func ValidateCountryName(name string) error {
	if name == "" {
		return apperrors.New(apperrors.KindValidation, MsgSelectCountry)
	}
	return nil
}

type countryRequest struct {
	CountryName string `json:"countryName"`
}

type errorBody struct {
	Error string `json:"error"`
}

// FetchCountryData sends POST <base><endpoint> with {"countryName": name}.
// Exactly one request is sent per call; an empty name sends none.
func (h *HTTP) FetchCountryData(ctx context.Context, countryName string) (record.Record, error) {
	if err := ValidateCountryName(countryName); err != nil {
		return nil, err
	}

	body, err := json.Marshal(countryRequest{CountryName: countryName})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "cannot encode request", err)
	}

	res, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(h.endpoint)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindNetwork, "request failed", err)
	}

	if !res.IsSuccess() {
		return nil, apperrors.Server(res.StatusCode(), serverMessage(res.Body(), res.StatusCode()))
	}

	rec, err := record.Decode(res.Body())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParse, "invalid JSON response", err)
	}
	return rec, nil
}

// serverMessage prefers the "error" field of a JSON error body and falls back to the
// status code.
func serverMessage(body []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		return eb.Error
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
