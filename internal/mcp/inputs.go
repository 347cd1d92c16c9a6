package mcp

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matyjas/nq-mcp/internal/openaq"
)

// CountriesListInput are the arguments of countries_in_open_aq.
type CountriesListInput struct {
	Page *int64 `json:"page,omitempty" jsonschema_description:"Paginate through results. e.g. page=1 will return first page of results"`
}

// CountryDetailsInput are the arguments of country_in_open_aq.
type CountryDetailsInput struct {
	CountriesID int64 `json:"countries_id" validate:"required" jsonschema_description:"country_id uniquely identifies Countries in the OpenAQ data set"`
}

// LocationsListInput are the arguments of locations_in_open_aq.
type LocationsListInput struct {
	Page        *int64        `json:"page,omitempty" jsonschema_description:"Paginate through results. e.g. page=1 will return first page of results"`
	CountriesID openaq.IDList `json:"countries_id,omitempty" jsonschema_description:"country_id uniquely identifies Countries in the OpenAQ data set"`
}

// LocationLatestInput are the arguments of latest_measurements_for_location.
type LocationLatestInput struct {
	LocationsID int64  `json:"locations_id" validate:"required" jsonschema_description:"locations_id uniquely identifies Locations in the OpenAQ data set"`
	Page        *int64 `json:"page,omitempty" jsonschema_description:"Paginate through results. e.g. page=1 will return first page of results"`
}

var validate = newValidator()

// newValidator reports fields by their JSON argument names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindInput decodes the call arguments into I and checks required fields.
func bindInput[I any](request mcp.CallToolRequest) (I, error) {
	var in I
	if err := request.BindArguments(&in); err != nil {
		return in, errors.Wrap(err, "invalid arguments")
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return in, errors.Newf("invalid arguments: %s is %s", verrs[0].Field(), verrs[0].Tag())
		}
		return in, errors.Wrap(err, "invalid arguments")
	}
	return in, nil
}
