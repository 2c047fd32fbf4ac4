package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/config"
	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// RoomState classifies a room by its active tickets.
type RoomState string

const (
	RoomStateOK       RoomState = "OK"
	RoomStatePending  RoomState = "PENDING"
	RoomStateCritical RoomState = "CRITICAL"
)

// KPISet aggregates the dashboard counters.
type KPISet struct {
	Pending        int `json:"pending"`
	Critical       int `json:"critical"`
	Blocked        int `json:"blocked"`
	ClosedRecently int `json:"closed_recently"`
}

// RoomStatus is the room-map entry for one room.
type RoomStatus struct {
	Number      string          `json:"number"`
	Floor       int             `json:"floor"`
	Type        domain.RoomType `json:"type"`
	State       RoomState       `json:"state"`
	Occupied    bool            `json:"occupied"`
	ActiveCount int             `json:"active_count"`
	Hotspot     bool            `json:"hotspot"`
	Recurrent   bool            `json:"recurrent"`
}

// StaffingEstimate is a rough headcount heuristic for shift planning.
// It spreads the actionable workload 60/40 across morning and evening
// at four tickets per technician; it is not a scheduling algorithm.
type StaffingEstimate struct {
	Actionable int `json:"actionable"`
	Morning    int `json:"morning"`
	Evening    int `json:"evening"`
	Night      int `json:"night"`
}

// AssetCount is one bar of the issues-by-asset chart.
type AssetCount struct {
	Asset string `json:"asset"`
	Count int    `json:"count"`
}

// Dashboard bundles every derived view the management screen renders.
type Dashboard struct {
	KPIs         KPISet           `json:"kpis"`
	Rooms        []RoomStatus     `json:"rooms"`
	TopPriority  []domain.Ticket  `json:"top_priority"`
	PartsNeeded  []domain.Ticket  `json:"parts_needed"`
	VendorNeeded []domain.Ticket  `json:"vendor_needed"`
	Staffing     StaffingEstimate `json:"staffing"`
	AssetCounts  []AssetCount     `json:"asset_counts"`
}

// AnalyticsService derives recurrence flags, hotspot flags and
// aggregate counts from the live collection. Nothing is maintained
// incrementally: every read recomputes from scratch, which is cheap at
// the collection sizes this service handles.
type AnalyticsService struct {
	tickets *TicketService
	rooms   []domain.Room
	cfg     config.AnalyticsConfig
	now     func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets *TicketService, cfg config.AnalyticsConfig, clock func() time.Time) *AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsService{
		tickets: tickets,
		rooms:   domain.Rooms(),
		cfg:     cfg,
		now:     clock,
	}
}

// Dashboard computes the full management view.
func (s *AnalyticsService) Dashboard() Dashboard {
	tickets := s.tickets.List()
	now := s.now()

	recurrent := s.recurrenceCounts(tickets, now)
	hot := s.hotspotRooms(tickets, now)

	return Dashboard{
		KPIs:         s.kpis(tickets, now),
		Rooms:        s.roomStatuses(tickets, recurrent, hot),
		TopPriority:  s.topPriority(tickets, s.cfg.TopPriorityLimit),
		PartsNeeded:  filterTickets(tickets, func(t domain.Ticket) bool { return t.NeedsPart && !t.Status.IsTerminal() }),
		VendorNeeded: filterTickets(tickets, func(t domain.Ticket) bool { return t.NeedsVendor && !t.Status.IsTerminal() }),
		Staffing:     s.staffing(tickets),
		AssetCounts:  assetCounts(tickets),
	}
}

// IsTicketRecurrent reports whether the ticket's (room, asset) pairing
// repeated within the recurrence window.
func (s *AnalyticsService) IsTicketRecurrent(t domain.Ticket) bool {
	return s.recurrenceCounts(s.tickets.List(), s.now())[recurrenceKey(t)] > 1
}

// IsRoomHotspot reports whether the room accumulated at least the
// threshold number of tickets inside the hotspot window.
func (s *AnalyticsService) IsRoomHotspot(roomNumber string) bool {
	return s.hotspotRooms(s.tickets.List(), s.now())[roomNumber]
}

// recurrenceCounts groups tickets created within the recurrence window
// by (room, asset), regardless of status.
func (s *AnalyticsService) recurrenceCounts(tickets []domain.Ticket, now time.Time) map[string]int {
	window := daysWindow(s.cfg.RecurrenceWindowDays)
	counts := make(map[string]int)
	for _, t := range tickets {
		if now.Sub(t.CreatedAt) > window {
			continue
		}
		counts[recurrenceKey(t)]++
	}
	return counts
}

func (s *AnalyticsService) hotspotRooms(tickets []domain.Ticket, now time.Time) map[string]bool {
	window := daysWindow(s.cfg.HotspotWindowDays)
	counts := make(map[string]int)
	for _, t := range tickets {
		if now.Sub(t.CreatedAt) > window {
			continue
		}
		counts[t.RoomNumber]++
	}
	hot := make(map[string]bool, len(s.rooms))
	for _, r := range s.rooms {
		hot[r.Number] = counts[r.Number] >= s.cfg.HotspotThreshold
	}
	return hot
}

func (s *AnalyticsService) kpis(tickets []domain.Ticket, now time.Time) KPISet {
	closedWindow := daysWindow(s.cfg.ClosedWindowDays)
	var kpis KPISet
	for _, t := range tickets {
		if !t.Status.IsTerminal() {
			kpis.Pending++
			if isCritical(t) {
				kpis.Critical++
			}
		}
		if t.Status == domain.TicketStatusWaitingPart || t.Status == domain.TicketStatusVendor {
			kpis.Blocked++
		}
		if t.Status == domain.TicketStatusVerified {
			if closed, ok := verifiedDate(t); ok && now.Sub(closed) <= closedWindow {
				kpis.ClosedRecently++
			}
		}
	}
	return kpis
}

func (s *AnalyticsService) roomStatuses(tickets []domain.Ticket, recurrent map[string]int, hot map[string]bool) []RoomStatus {
	statuses := make([]RoomStatus, 0, len(s.rooms))
	for _, room := range s.rooms {
		status := RoomStatus{
			Number:  room.Number,
			Floor:   room.Floor,
			Type:    room.Type,
			State:   RoomStateOK,
			Hotspot: hot[room.Number],
		}
		for _, t := range tickets {
			if t.RoomNumber != room.Number || t.Status.IsTerminal() {
				continue
			}
			status.ActiveCount++
			if t.IsOccupied {
				status.Occupied = true
			}
			if isCritical(t) {
				status.State = RoomStateCritical
			} else if status.State == RoomStateOK {
				status.State = RoomStatePending
			}
			if recurrent[recurrenceKey(t)] > 1 {
				status.Recurrent = true
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// topPriority ranks non-terminal tickets by score, descending. The sort
// is stable so ties keep the collection's display order.
func (s *AnalyticsService) topPriority(tickets []domain.Ticket, limit int) []domain.Ticket {
	ranked := filterTickets(tickets, func(t domain.Ticket) bool { return !t.Status.IsTerminal() })
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *AnalyticsService) staffing(tickets []domain.Ticket) StaffingEstimate {
	actionable := 0
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusResolved:
			actionable++
		}
	}
	return StaffingEstimate{
		Actionable: actionable,
		Morning:    headcount(actionable, 0.6),
		Evening:    headcount(actionable, 0.4),
		Night:      1,
	}
}

func headcount(actionable int, share float64) int {
	count := int(math.Ceil(float64(actionable) * share / 4))
	if count < 1 {
		return 1
	}
	return count
}

func assetCounts(tickets []domain.Ticket) []AssetCount {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, t := range tickets {
		if _, seen := counts[t.Asset]; !seen {
			order = append(order, t.Asset)
		}
		counts[t.Asset]++
	}
	result := make([]AssetCount, 0, len(order))
	for _, asset := range order {
		result = append(result, AssetCount{Asset: asset, Count: counts[asset]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func isCritical(t domain.Ticket) bool {
	return t.Urgency == domain.UrgencyHigh || t.Impact == domain.ImpactBlocking
}

// verifiedDate prefers the explicit closure timestamp and otherwise
// falls back to the most recent history event whose action text denotes
// verification.
func verifiedDate(t domain.Ticket) (time.Time, bool) {
	if t.ClosedAt != nil {
		return *t.ClosedAt, true
	}
	for i := len(t.History) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(t.History[i].Action), "verif") {
			return t.History[i].Date, true
		}
	}
	return time.Time{}, false
}

func recurrenceKey(t domain.Ticket) string {
	return t.RoomNumber + "|" + t.Asset
}

func daysWindow(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

func filterTickets(tickets []domain.Ticket, keep func(domain.Ticket) bool) []domain.Ticket {
	result := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}
