package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEventsMarksEffectiveDatesOnly(t *testing.T) {
	amount := 20e9
	records := []AuctionRecord{
		{
			Cusip:            "912828YK0",
			IssueDate:        mustDate("2023-01-31"),
			AuctionDate:      mustDate("2023-01-16"),
			AnnouncementDate: mustDate("2023-01-05"),
			TotalAccepted:    &amount,
		},
	}

	rows := []Row{
		issuedRow("912828YK0", mustDate("2023-01-30"), mustDate("2023-01-31"), 10),
		issuedRow("912828YK0", mustDate("2023-01-31"), mustDate("2023-01-31"), 10),
		issuedRow("912828YK0", mustDate("2023-02-01"), mustDate("2023-01-31"), 10),
	}

	TagEvents(rows, records)

	assert.Nil(t, rows[0].IssuanceType)
	assert.Nil(t, rows[0].AuctionDate)

	require.NotNil(t, rows[1].IssuanceType)
	assert.Equal(t, IssuanceOpening, *rows[1].IssuanceType)
	require.NotNil(t, rows[1].AuctionDate)
	assert.Equal(t, mustDate("2023-01-16"), *rows[1].AuctionDate)

	assert.Nil(t, rows[2].IssuanceType, "event fields are nil off the event date")
	assert.Nil(t, rows[2].AuctionDate)
}

func TestTagEventsAnnouncementCarriedForward(t *testing.T) {
	records := []AuctionRecord{
		{
			Cusip:            "X",
			IssueDate:        mustDate("2023-01-31"),
			AuctionDate:      mustDate("2023-01-16"),
			AnnouncementDate: mustDate("2023-01-05"),
		},
		{
			Cusip:            "X",
			IssueDate:        mustDate("2023-02-28"),
			AuctionDate:      mustDate("2023-02-15"),
			AnnouncementDate: mustDate("2023-02-07"),
			Reopening:        true,
		},
	}

	rows := []Row{
		issuedRow("X", mustDate("2023-01-31"), mustDate("2023-01-31"), 10),
		issuedRow("X", mustDate("2023-02-06"), mustDate("2023-01-31"), 10),
		issuedRow("X", mustDate("2023-02-07"), mustDate("2023-01-31"), 10),
		issuedRow("X", mustDate("2023-03-01"), mustDate("2023-01-31"), 10),
	}

	TagEvents(rows, records)

	require.NotNil(t, rows[0].AnnouncementDate)
	assert.Equal(t, mustDate("2023-01-05"), *rows[0].AnnouncementDate)
	require.NotNil(t, rows[1].AnnouncementDate)
	assert.Equal(t, mustDate("2023-01-05"), *rows[1].AnnouncementDate, "second announcement not yet published")
	require.NotNil(t, rows[2].AnnouncementDate)
	assert.Equal(t, mustDate("2023-02-07"), *rows[2].AnnouncementDate, "later announcement overwrites the running value")
	require.NotNil(t, rows[3].AnnouncementDate)
	assert.Equal(t, mustDate("2023-02-07"), *rows[3].AnnouncementDate)
}

func TestTagEventsReopeningLabel(t *testing.T) {
	records := []AuctionRecord{
		{
			Cusip:            "X",
			IssueDate:        mustDate("2023-02-28"),
			AuctionDate:      mustDate("2023-02-15"),
			AnnouncementDate: mustDate("2023-02-07"),
			Reopening:        true,
		},
	}
	rows := []Row{issuedRow("X", mustDate("2023-02-28"), mustDate("2023-01-31"), 10)}

	TagEvents(rows, records)

	require.NotNil(t, rows[0].IssuanceType)
	assert.Equal(t, IssuanceReopening, *rows[0].IssuanceType)
}

func TestTagEventsUnscheduledReopeningDate(t *testing.T) {
	records := []AuctionRecord{
		{
			Cusip:                "X",
			IssueDate:            mustDate("2023-02-28"),
			AuctionDate:          mustDate("2023-02-15"),
			AnnouncementDate:     mustDate("2023-02-07"),
			Reopening:            true,
			UnscheduledReopening: true,
		},
	}
	rows := []Row{
		issuedRow("X", mustDate("2023-02-27"), mustDate("2023-01-31"), 10),
		issuedRow("X", mustDate("2023-02-28"), mustDate("2023-01-31"), 10),
		issuedRow("X", mustDate("2023-03-01"), mustDate("2023-01-31"), 10),
	}

	TagEvents(rows, records)

	assert.Nil(t, rows[0].UnscheduledReopeningDate)
	require.NotNil(t, rows[1].UnscheduledReopeningDate)
	assert.Equal(t, mustDate("2023-02-28"), *rows[1].UnscheduledReopeningDate)
	assert.Nil(t, rows[2].UnscheduledReopeningDate)
}
