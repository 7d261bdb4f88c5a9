package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBuyOpensLots(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)
	lt.Buy("Fund A", d(2023, 2, 2), 50, 12)

	if got := lt.GetHoldings("Fund A"); !almostEqual(got, 150) {
		t.Errorf("GetHoldings = %v, want 150", got)
	}
	lots := lt.GetLots("Fund A")
	if len(lots) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(lots))
	}
	if lots[0].PurchaseNav != 10 || lots[1].PurchaseNav != 12 {
		t.Errorf("lots out of purchase order: %+v", lots)
	}
}

func TestSellConsumesOldestFirst(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)
	lt.Buy("Fund A", d(2023, 2, 2), 50, 12)

	gains, err := lt.Sell("Fund A", d(2023, 6, 2), 120, 15)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if len(gains) != 2 {
		t.Fatalf("expected 2 realized gains, got %d", len(gains))
	}
	if !almostEqual(gains[0].Units, 100) || !almostEqual(gains[0].Gain, 500) {
		t.Errorf("first gain = %+v, want 100 units gain 500", gains[0])
	}
	if !almostEqual(gains[1].Units, 20) || !almostEqual(gains[1].Gain, 60) {
		t.Errorf("second gain = %+v, want 20 units gain 60", gains[1])
	}

	lots := lt.GetLots("Fund A")
	if len(lots) != 1 {
		t.Fatalf("expected 1 remaining lot, got %d", len(lots))
	}
	if !almostEqual(lots[0].Units, 30) || lots[0].PurchaseNav != 12 {
		t.Errorf("remaining lot = %+v, want 30 units at nav 12", lots[0])
	}
}

func TestSellRecordsHoldingDays(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 1), 10, 10)

	gains, err := lt.Sell("Fund A", d(2024, 1, 1), 10, 11)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if gains[0].HoldingDays != 365 {
		t.Errorf("HoldingDays = %d, want 365", gains[0].HoldingDays)
	}
	if !gains[0].LongTerm(365) {
		t.Error("expected a 365 day holding to count as long term")
	}
}

func TestOversellRejectedAtomically(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)

	_, err := lt.Sell("Fund A", d(2023, 6, 2), 150, 15)
	if !errors.Is(err, OversellErr) {
		t.Fatalf("expected OversellErr, got %v", err)
	}
	if got := lt.GetHoldings("Fund A"); !almostEqual(got, 100) {
		t.Errorf("holdings changed after rejected sale: %v", got)
	}
	if len(lt.RealizedGains()) != 0 {
		t.Error("rejected sale recorded realized gains")
	}
}

func TestSellUnknownFund(t *testing.T) {
	lt := NewLotTracker()
	if _, err := lt.Sell("Fund B", d(2023, 6, 2), 10, 15); !errors.Is(err, NoLotsErr) {
		t.Fatalf("expected NoLotsErr, got %v", err)
	}
}

func TestSellExactHoldingsWithFloatResidue(t *testing.T) {
	lt := NewLotTracker()
	// Units from three odd contributions rarely sum exactly.
	lt.Buy("Fund A", d(2023, 1, 2), 100.0/3, 10)
	lt.Buy("Fund A", d(2023, 2, 2), 100.0/7, 10)
	lt.Buy("Fund A", d(2023, 3, 2), 100.0/9, 10)

	held := lt.GetHoldings("Fund A")
	if _, err := lt.Sell("Fund A", d(2023, 6, 2), held, 12); err != nil {
		t.Fatalf("selling exact holdings failed: %v", err)
	}
	if got := lt.GetHoldings("Fund A"); got > unitTolerance {
		t.Errorf("holdings not drained: %v", got)
	}
	if len(lt.GetLots("Fund A")) != 0 {
		t.Error("drained lots still open")
	}
}

func TestGetAllHoldingsOmitsDrainedFunds(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)
	lt.Buy("Fund B", d(2023, 1, 2), 50, 20)
	if _, err := lt.Sell("Fund A", d(2023, 2, 2), 100, 11); err != nil {
		t.Fatalf("Sell: %v", err)
	}

	all := lt.GetAllHoldings()
	if _, ok := all["Fund A"]; ok {
		t.Error("drained fund still reported")
	}
	if !almostEqual(all["Fund B"], 50) {
		t.Errorf("Fund B holdings = %v, want 50", all["Fund B"])
	}
}

func TestRealizedGainsAccumulateAcrossSales(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)
	if _, err := lt.Sell("Fund A", d(2023, 3, 2), 40, 11); err != nil {
		t.Fatal(err)
	}
	if _, err := lt.Sell("Fund A", d(2023, 4, 2), 40, 12); err != nil {
		t.Fatal(err)
	}
	gains := lt.RealizedGains()
	if len(gains) != 2 {
		t.Fatalf("expected 2 gains, got %d", len(gains))
	}
	if !almostEqual(gains[0].Gain, 40) || !almostEqual(gains[1].Gain, 80) {
		t.Errorf("gains = %v and %v, want 40 and 80", gains[0].Gain, gains[1].Gain)
	}
}

func TestGetLotsReturnsCopies(t *testing.T) {
	lt := NewLotTracker()
	lt.Buy("Fund A", d(2023, 1, 2), 100, 10)
	lots := lt.GetLots("Fund A")
	lots[0].Units = 0
	if got := lt.GetHoldings("Fund A"); !almostEqual(got, 100) {
		t.Errorf("mutating returned lots changed tracker state: %v", got)
	}
}
