package bustime

// StopRecord is the flattened position and next stop of one active bus.
// Only the csv tagged fields end up in the tabular export.
type StopRecord struct {
	BusID      int     `csv:"Bus ID" json:"BusID" groups:"basic"`
	Latitude   float64 `csv:"Latitude" json:"Latitude" groups:"basic"`
	Longitude  float64 `csv:"Longitude" json:"Longitude" groups:"basic"`
	StopName   string  `csv:"Stop Name" json:"StopName" groups:"basic"`
	StopStatus string  `csv:"Stop Status" json:"StopStatus" groups:"basic"`

	LineRef        string `csv:"-" json:"LineRef" groups:"detailed"`
	VehicleRef     string `csv:"-" json:"VehicleRef" groups:"detailed"`
	RecordedAtTime string `csv:"-" json:"RecordedAtTime" groups:"detailed"`
}

const NotAvailable = "N/A"
