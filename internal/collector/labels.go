package collector

// Period distinguishes the active connection from the lifetime totals.
type Period string

const (
	PeriodSession Period = "session"
	PeriodTotal   Period = "total"
)

// Periods lists every Period in emission order.
var Periods = [...]Period{PeriodSession, PeriodTotal}

// Direction distinguishes sent from received traffic.
type Direction string

const (
	DirectionUpload   Direction = "upload"
	DirectionDownload Direction = "download"
)

// Directions lists every Direction in emission order.
var Directions = [...]Direction{DirectionUpload, DirectionDownload}

// Label names.
const (
	labelPeriod    = "period"
	labelDirection = "direction"
)
