package favorites

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/actions"
)

const (
	numberQueryParam = "number"
	colorQueryParam  = "color"

	maxRequestBodySize = 64 << 10
)

type setFavoritesRequest struct {
	account string
	number  uint64
	color   string
}

func newSetFavoritesRequestFromHttpContext(w http.ResponseWriter, r *http.Request) (*setFavoritesRequest, error) {
	numberValues := r.URL.Query()[numberQueryParam]
	colorValues := r.URL.Query()[colorQueryParam]

	if len(numberValues) < 1 {
		return nil, newInvalidInputError(nil, "number query parameter missing")
	}

	number, err := parseNumber(numberValues[0])
	if err != nil {
		return nil, newInvalidInputError(err, "number is not an unsigned 64-bit integer")
	}

	var color string
	if len(colorValues) > 0 {
		color = colorValues[0]
	}

	var body actions.ActionPostRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err := decoder.Decode(&body); err != nil {
		return nil, newInvalidInputError(err, "invalid request body")
	}

	return &setFavoritesRequest{
		account: body.Account,
		number:  number,
		color:   color,
	}, nil
}

// parseNumber accepts base-10 integers in [0, 2^64-1] with optional
// surrounding whitespace.
func parseNumber(value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return 0, errors.New("value is empty")
	}
	return strconv.ParseUint(trimmed, 10, 64)
}

func (r *setFavoritesRequest) toBuilderArgs() *SetFavoritesArgs {
	return &SetFavoritesArgs{
		Account: r.account,
		Number:  r.number,
		Color:   r.color,
	}
}
