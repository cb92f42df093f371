package panel

import (
	"sort"
	"time"
)

// TagEvents populates the auction-event fields in place. Each auction is
// marked on its effective date, the date its amount is issued: that row
// carries issuanceType ("Opening" or "Re-opening") and the auction's
// auctionDate, with both nil on every other date. announcementDate is
// last-observation-carried-forward, holding the most recent announcement as
// of each row's date. unscheduledReopeningDate appears only on the date of
// an unscheduled re-opening. Each cusip is a single forward scan over its
// chronologically sorted events merged against its date range.
func TagEvents(rows []Row, records []AuctionRecord) {
	events := make(map[string][]AuctionRecord)
	for _, rec := range records {
		events[rec.Cusip] = append(events[rec.Cusip], rec)
	}

	for cusip, idxs := range rowsByCusip(rows) {
		evs := events[cusip]
		sort.Slice(evs, func(i, j int) bool {
			return evs[i].AuctionDate.Before(evs[j].AuctionDate)
		})

		// Chronological map construction: a later auction issued on the
		// same date overwrites an earlier one.
		byEffectiveDate := make(map[time.Time]AuctionRecord, len(evs))
		byUnscheduledIssue := make(map[time.Time]AuctionRecord)
		announcements := make([]time.Time, 0, len(evs))
		for _, ev := range evs {
			byEffectiveDate[ev.IssueDate] = ev
			if ev.UnscheduledReopening {
				byUnscheduledIssue[ev.IssueDate] = ev
			}
			announcements = append(announcements, ev.AnnouncementDate)
		}
		sort.Slice(announcements, func(i, j int) bool {
			return announcements[i].Before(announcements[j])
		})

		var lastAnnouncement *time.Time
		j := 0
		for _, idx := range idxs {
			d := rows[idx].Date

			for j < len(announcements) && !announcements[j].After(d) {
				ann := announcements[j]
				lastAnnouncement = &ann
				j++
			}
			rows[idx].AnnouncementDate = lastAnnouncement

			if ev, ok := byEffectiveDate[d]; ok {
				auctionDate := ev.AuctionDate
				issuanceType := IssuanceOpening
				if ev.Reopening {
					issuanceType = IssuanceReopening
				}
				rows[idx].AuctionDate = &auctionDate
				rows[idx].IssuanceType = &issuanceType
			}
			if ev, ok := byUnscheduledIssue[d]; ok {
				issueDate := ev.IssueDate
				rows[idx].UnscheduledReopeningDate = &issueDate
			}
		}
	}
}
