package panel

import (
	"time"
)

// SecurityType is the base Treasury security category. TIPS and FRN are
// orthogonal attributes layered on top, not separate types.
type SecurityType string

const (
	// Bill is a security with a tenor measured in weeks
	Bill SecurityType = "Bill"
	// Note is a coupon security with a tenor of ten years or less
	Note SecurityType = "Note"
	// Bond is a coupon security with a twenty or thirty year tenor
	Bond SecurityType = "Bond"
)

// TenorUnit distinguishes week tenors (bills) from year tenors (notes/bonds)
type TenorUnit string

const (
	// UnitWeek marks a tenor measured in weeks
	UnitWeek TenorUnit = "Week"
	// UnitYear marks a tenor measured in years
	UnitYear TenorUnit = "Year"
)

// WhenIssued is the vintage reserved for securities that have been announced
// but not yet issued.
const WhenIssued = -1

// RawRecord is one auction row as delivered by the fetch collaborator,
// before any typing. Field values are the API's string encodings: dates as
// YYYY-MM-DD, flags as Yes/No, absent values as "null" or empty.
type RawRecord struct {
	Cusip             string
	SecurityType      string
	SecurityTerm      string
	IssueDate         string
	OriginalIssueDate string
	MaturityDate      string
	InterestRate      string
	TotalAccepted     string
	Reopening         string
	InflationIndexed  string
	FloatingRate      string
	AnnouncementDate  string
	AnnouncedCusip    string
	AuctionDate       string
}

// AuctionRecord is one typed auction event. The cusip plus auction date pair
// is unique across a record set.
type AuctionRecord struct {
	Cusip                string
	SecurityType         string
	SecurityTerm         string
	IssueDate            time.Time
	OriginalIssueDate    *time.Time
	MaturityDate         time.Time
	AuctionDate          time.Time
	AnnouncementDate     time.Time
	InterestRate         *float64
	TotalAccepted        *float64
	Reopening            bool
	UnscheduledReopening bool
	InflationIndexed     bool
	FloatingRate         bool
}

// ClassifiedSecurity holds the per-cusip attributes derived once from that
// cusip's auction history.
type ClassifiedSecurity struct {
	Cusip            string
	Tenor            int
	Unit             TenorUnit
	Type             SecurityType
	InflationIndexed bool
	FloatingRate     bool
	Coupon           *float64
	FirstIssueDate   time.Time
	MaturityDate     time.Time
	AnnouncementDate time.Time
}

// Row is one cusip-by-business-date observation of the finished panel.
// Nil pointer fields encode absent values: coupon and totalIssued before
// first issuance, event fields away from their event dates.
type Row struct {
	Date                     time.Time    `json:"date"`
	Cusip                    string       `json:"cusip"`
	Tenor                    int          `json:"tenor"`
	Vintage                  int          `json:"vintage"`
	MaturityDate             time.Time    `json:"maturityDate"`
	Coupon                   *float64     `json:"coupon"`
	FirstIssueDate           time.Time    `json:"firstIssueDate"`
	IssuanceType             *string      `json:"issuanceType"`
	AuctionDate              *time.Time   `json:"auctionDate"`
	UnscheduledReopeningDate *time.Time   `json:"unscheduledReopeningDate"`
	TotalIssued              *float64     `json:"totalIssued"`
	AnnouncementDate         *time.Time   `json:"announcementDate"`
	InflationIndexed         bool         `json:"inflation_index_security"`
	FloatingRate             bool         `json:"floating_rate"`
	SecurityType             SecurityType `json:"security_type"`
}

// IsWhenIssued reports whether the row falls between announcement and first
// issuance.
func (r Row) IsWhenIssued() bool {
	return r.Date.Before(r.FirstIssueDate)
}

// Columns is the panel's wire contract: output column names in order. Any
// serialization of the panel must emit exactly these columns.
var Columns = []string{
	"date",
	"cusip",
	"tenor",
	"vintage",
	"maturityDate",
	"coupon",
	"firstIssueDate",
	"issuanceType",
	"auctionDate",
	"unscheduledReopeningDate",
	"totalIssued",
	"announcementDate",
	"inflation_index_security",
	"floating_rate",
	"security_type",
}

// Issuance type labels carried by auction events.
const (
	IssuanceOpening   = "Opening"
	IssuanceReopening = "Re-opening"
)
