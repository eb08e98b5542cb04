package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/job"

	"github.com/google/uuid"
)

var discard = log.New(io.Discard, "", 0)

func newRecalculator(store *memStore, async bool) *HiringRateRecalculator {
	return NewHiringRateRecalculator(store, store, store, HiringRateOptions{Async: async, Timeout: time.Second}, nil, nil, discard)
}

func hire(t *testing.T, store *memStore, rec *HiringRateRecalculator, appID uuid.UUID) application.Detail {
	t.Helper()
	uc := NewApplicationUsecase(store, rec, nil, nil, discard)
	d, err := uc.UpdateApplicationStatus(context.Background(), appID, string(application.StatusHired))
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	rec.Wait()
	return d
}

func TestHiringRate_AcrossCompanyJobs(t *testing.T) {
	for _, async := range []bool{true, false} {
		store := newMemStore()
		c := store.addCompany("Acme")
		j1 := store.addJob(&c, job.StatusActive)
		j2 := store.addJob(&c, job.StatusActive)
		store.addApplication(j1, application.StatusHired)
		store.addApplication(j1, application.StatusRejected)
		a3 := store.addApplication(j2, application.StatusPending)

		other := store.addCompany("Other")
		oj := store.addJob(&other, job.StatusActive)
		store.addApplication(oj, application.StatusHired)

		hire(t, store, newRecalculator(store, async), a3)

		rate := store.hiringRate(c)
		if rate == nil || *rate != 67 {
			t.Fatalf("async=%v: expected rate 67, got %v", async, rate)
		}
		if store.hiringRate(other) != nil {
			t.Fatalf("async=%v: unrelated company must not be written", async)
		}
	}
}

func TestHiringRate_SingleApplication(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	j := store.addJob(&c, job.StatusActive)
	a := store.addApplication(j, application.StatusPending)

	hire(t, store, newRecalculator(store, true), a)

	if rate := store.hiringRate(c); rate == nil || *rate != 100 {
		t.Fatalf("expected rate 100, got %v", rate)
	}
}

func TestHiringRate_Idempotent(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	j := store.addJob(&c, job.StatusActive)
	a := store.addApplication(j, application.StatusPending)
	store.addApplication(j, application.StatusRejected)
	rec := newRecalculator(store, true)

	hire(t, store, rec, a)
	first := *store.hiringRate(c)
	hire(t, store, rec, a)
	second := *store.hiringRate(c)

	if first != 50 || second != first {
		t.Fatalf("expected identical rate 50 twice, got %d then %d", first, second)
	}
	if len(store.rateWrites) != 2 {
		t.Fatalf("expected two writes, got %d", len(store.rateWrites))
	}
}

func TestHiringRate_JobWithoutCompanyIsSkipped(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	j := store.addJob(nil, job.StatusActive)
	a := store.addApplication(j, application.StatusPending)

	d := hire(t, store, newRecalculator(store, false), a)

	if d.Status != application.StatusHired {
		t.Fatalf("expected hired status, got %q", d.Status)
	}
	if store.hiringRate(c) != nil || len(store.rateWrites) != 0 {
		t.Fatalf("expected no hiring rate write")
	}
}

func TestHiringRate_JobIDReadFailureDoesNotFailUpdate(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	j := store.addJob(&c, job.StatusActive)
	a := store.addApplication(j, application.StatusPending)
	store.failListJobIDs = errStoreDown

	for _, async := range []bool{true, false} {
		d := hire(t, store, newRecalculator(store, async), a)
		if d.Status != application.StatusHired {
			t.Fatalf("async=%v: expected hired, got %q", async, d.Status)
		}
	}
	if store.hiringRate(c) != nil {
		t.Fatalf("expected hiring rate untouched")
	}
}

func TestRecalculateCompany_NoJobsSkipsWrite(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Empty")
	rec := newRecalculator(store, false)

	_, err := rec.RecalculateCompany(context.Background(), c)
	if !errors.Is(err, ErrNoCompanyJobs) {
		t.Fatalf("expected ErrNoCompanyJobs, got %v", err)
	}
	if store.hiringRate(c) != nil || len(store.rateWrites) != 0 {
		t.Fatalf("expected no write for a company without jobs")
	}
}

func TestRecalculateCompany_ReturnsSnapshotAndNotifies(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	j := store.addJob(&c, job.StatusActive)
	store.addApplication(j, application.StatusHired)
	store.addApplication(j, application.StatusPending)
	store.addApplication(j, application.StatusPending)

	pub := &recordingPublisher{}
	inv := &countingInvalidator{}
	rec := NewHiringRateRecalculator(store, store, store, HiringRateOptions{}, pub, inv, discard)

	snap, err := rec.RecalculateCompany(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if snap.Hired != 1 || snap.Total != 3 || snap.Rate() != 33 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if inv.count() != 1 {
		t.Fatalf("expected stats invalidation, got %d", inv.count())
	}
	if len(pub.entities) != 1 || pub.entities[0].id != c {
		t.Fatalf("expected company entity event, got %+v", pub.entities)
	}
}

func TestHiringRate_StoreFailuresDoNotFailUpdate(t *testing.T) {
	cases := []struct {
		name string
		set  func(*memStore)
	}{
		{"status read", func(m *memStore) { m.failStatuses = errStoreDown }},
		{"rate write", func(m *memStore) { m.failRateWrite = errStoreDown }},
	}
	for _, tc := range cases {
		for _, async := range []bool{true, false} {
			store := newMemStore()
			c := store.addCompany("Acme")
			j := store.addJob(&c, job.StatusActive)
			a := store.addApplication(j, application.StatusPending)
			store.setHiringRate(c, 40)
			tc.set(store)

			d := hire(t, store, newRecalculator(store, async), a)

			if d.Status != application.StatusHired {
				t.Fatalf("%s async=%v: expected hired, got %q", tc.name, async, d.Status)
			}
			if rate := store.hiringRate(c); rate == nil || *rate != 40 {
				t.Fatalf("%s async=%v: expected rate to stay 40, got %v", tc.name, async, rate)
			}
		}
	}
}

func TestRecalculateCompany_StatusReadFailureReturnsError(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	store.addJob(&c, job.StatusActive)
	store.failStatuses = errStoreDown

	_, err := newRecalculator(store, false).RecalculateCompany(context.Background(), c)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(store.rateWrites) != 0 {
		t.Fatalf("expected no write after a failed read")
	}
}

func TestRecalculateCompany_NoJobsKeepsExistingRate(t *testing.T) {
	store := newMemStore()
	c := store.addCompany("Acme")
	store.setHiringRate(c, 55)

	_, err := newRecalculator(store, false).RecalculateCompany(context.Background(), c)
	if !errors.Is(err, ErrNoCompanyJobs) {
		t.Fatalf("expected ErrNoCompanyJobs, got %v", err)
	}
	if rate := store.hiringRate(c); rate == nil || *rate != 55 {
		t.Fatalf("expected rate 55 to survive, got %v", rate)
	}
}
