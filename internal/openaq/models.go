package openaq

// Meta is the paging envelope returned alongside every result set.
// Found is either a count or a string such as ">1000".
type Meta struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Page    int64  `json:"page"`
	Limit   int64  `json:"limit"`
	Found   any    `json:"found"`
}

// Datetime is a timestamp reported in both UTC and the location's local time.
type Datetime struct {
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ParameterBase struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Units       string `json:"units"`
	DisplayName string `json:"displayName"`
}

// Country is a record from the countries resource.
type Country struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	DatetimeFirst string          `json:"datetimeFirst"`
	DatetimeLast  string          `json:"datetimeLast"`
	Parameters    []ParameterBase `json:"parameters"`
}

type CountryBase struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type EntityBase struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProviderBase struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type InstrumentBase struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SensorBase struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Parameter ParameterBase `json:"parameter"`
}

type Attribution struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type LocationLicense struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Attribution Attribution `json:"attribution"`
	DateFrom    string      `json:"dateFrom"`
	DateTo      string      `json:"dateTo"`
}

// Location is a monitoring site from the locations resource.
type Location struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Locality      string            `json:"locality"`
	Timezone      string            `json:"timezone"`
	Country       CountryBase       `json:"country"`
	Owner         EntityBase        `json:"owner"`
	Provider      ProviderBase      `json:"provider"`
	IsMobile      bool              `json:"isMobile"`
	IsMonitor     bool              `json:"isMonitor"`
	Instruments   []InstrumentBase  `json:"instruments"`
	Sensors       []SensorBase      `json:"sensors"`
	Coordinates   Coordinates       `json:"coordinates"`
	Licenses      []LocationLicense `json:"licenses"`
	Bounds        []float64         `json:"bounds"`
	Distance      float64           `json:"distance"`
	DatetimeFirst Datetime          `json:"datetimeFirst"`
	DatetimeLast  Datetime          `json:"datetimeLast"`
}

// Latest is the most recent measurement of one sensor at a location.
type Latest struct {
	Datetime    Datetime    `json:"datetime"`
	Value       float64     `json:"value"`
	Coordinates Coordinates `json:"coordinates"`
	SensorsID   int64       `json:"sensorsId"`
	LocationsID int64       `json:"locationsId"`
}
