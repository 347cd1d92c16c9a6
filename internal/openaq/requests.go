package openaq

import (
	"net/url"
	"strconv"
)

// SortOrder is the direction applied to OrderBy.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// LatestLimit is the page size always requested for latest measurements.
const LatestLimit int64 = 100

// CountriesQuery holds the query parameters of GET v3/countries.
// Nil fields are left out of the query string.
type CountriesQuery struct {
	OrderBy      *string
	SortOrder    *SortOrder
	ProvidersID  IDList
	ParametersID IDList
	Limit        *int64
	Page         *int64
}

// ListCountriesRequest lists countries.
type ListCountriesRequest struct {
	Query CountriesQuery
}

// GetCountryRequest fetches one country by id.
type GetCountryRequest struct {
	CountriesID int64
}

// LocationsQuery holds the query parameters of GET v3/locations.
type LocationsQuery struct {
	Coordinates     *string
	Radius          *int64
	ProvidersID     IDList
	ParametersID    IDList
	Limit           *int64
	Page            *int64
	OwnerContactsID IDList
	ManufacturersID IDList
	OrderBy         *string
	SortOrder       *SortOrder
	LicensesID      IDList
	Monitor         *bool
	Mobile          *bool
	InstrumentsID   IDList
	ISO             *string
	CountriesID     IDList
	BBox            *string
}

// ListLocationsRequest lists locations.
type ListLocationsRequest struct {
	Query LocationsQuery
}

// LatestQuery holds the query parameters of GET v3/locations/{id}/latest.
type LatestQuery struct {
	Limit       *int64
	Page        *int64
	DatetimeMin *string
}

// LocationLatestRequest fetches the latest measurements of one location.
type LocationLatestRequest struct {
	LocationsID int64
	Query       LatestQuery
}

// Values encodes the query, omitting absent parameters.
func (q CountriesQuery) Values() url.Values {
	v := url.Values{}
	addString(v, "order_by", q.OrderBy)
	addSort(v, q.SortOrder)
	q.ProvidersID.addTo(v, "providers_id")
	q.ParametersID.addTo(v, "parameters_id")
	addInt(v, "limit", q.Limit)
	addInt(v, "page", q.Page)
	return v
}

// Values encodes the query, omitting absent parameters.
func (q LocationsQuery) Values() url.Values {
	v := url.Values{}
	addString(v, "coordinates", q.Coordinates)
	addInt(v, "radius", q.Radius)
	q.ProvidersID.addTo(v, "providers_id")
	q.ParametersID.addTo(v, "parameters_id")
	addInt(v, "limit", q.Limit)
	addInt(v, "page", q.Page)
	q.OwnerContactsID.addTo(v, "owner_contacts_id")
	q.ManufacturersID.addTo(v, "manufacturers_id")
	addString(v, "order_by", q.OrderBy)
	addSort(v, q.SortOrder)
	q.LicensesID.addTo(v, "licenses_id")
	addBool(v, "monitor", q.Monitor)
	addBool(v, "mobile", q.Mobile)
	q.InstrumentsID.addTo(v, "instruments_id")
	addString(v, "iso", q.ISO)
	q.CountriesID.addTo(v, "countries_id")
	addString(v, "bbox", q.BBox)
	return v
}

// Values encodes the query, omitting absent parameters.
func (q LatestQuery) Values() url.Values {
	v := url.Values{}
	addInt(v, "limit", q.Limit)
	addInt(v, "page", q.Page)
	addString(v, "datetime_min", q.DatetimeMin)
	return v
}

func addInt(v url.Values, name string, val *int64) {
	if val != nil {
		v.Set(name, strconv.FormatInt(*val, 10))
	}
}

func addString(v url.Values, name string, val *string) {
	if val != nil {
		v.Set(name, *val)
	}
}

func addBool(v url.Values, name string, val *bool) {
	if val != nil {
		v.Set(name, strconv.FormatBool(*val))
	}
}

func addSort(v url.Values, val *SortOrder) {
	if val != nil {
		v.Set("sort_order", string(*val))
	}
}
