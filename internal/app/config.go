package app

// Constants
const (
	FilePrefix = "acm-events"

	// Error messages
	ErrEventNotFound        = "Event not found"
	ErrInvalidFormat        = "Invalid format"
	ErrInvalidTarget        = "Invalid counter target"
	ErrInvalidRatio         = "Invalid visibility ratio"
	ErrUnknownCounter       = "Unknown counter"
	ErrCounterInUse         = "Counter already streaming"
	ErrInternalServer       = "Internal server error"
	ErrFailedToGenerateJSON = "Failed to generate JSON"
	ErrFailedToGenerateICS  = "Failed to generate calendar"

	// UI copy
	MsgNoEvents       = "No events found for the selected year."
	MsgNotFoundTitle  = "Event Not Found"
	MsgNotFoundDetail = "The event you're looking for doesn't exist."
	MsgBackToEvents   = "Back to Events"

	// ICS constants
	ICSProductID = "-//ACMxPCCOER//Events//EN"
	ICSDomain    = "events.acm-pccoer.in"

	// Date layouts used by the catalog's display strings
	LayoutDisplayDate = "Jan 2, 2006"
	LayoutDisplayTime = "3:04 PM"

	// Largest counter target the stream endpoint accepts.
	MaxCounterTarget = 1_000_000
)

// Export formats accepted by /api/download
const (
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
)
