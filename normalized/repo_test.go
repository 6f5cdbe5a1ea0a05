package normalized_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx/fxtest"

	httpErrors "github.com/nocturne-org/nocturne/errors"
	"github.com/nocturne-org/nocturne/normalized"
	normalizedTest "github.com/nocturne-org/nocturne/normalized/test"
	"github.com/nocturne-org/nocturne/pointer"
	dbTest "github.com/nocturne-org/nocturne/store/test"
)

var _ = Describe("Repositories", func() {
	var repos *normalized.Repositories
	var ctx context.Context

	BeforeEach(func() {
		var err error
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repos, err = normalized.NewRepositories(dbTest.GetTestDatabase(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repos).ToNot(BeNil())
		lifecycle.RequireStart()
		ctx = context.Background()
	})

	Describe("Insert", func() {
		It("assigns an object id", func() {
			bolus := normalizedTest.RandomBolus()
			bolus.Id = nil

			inserted, err := repos.Boluses.Insert(ctx, bolus)
			Expect(err).ToNot(HaveOccurred())
			Expect(inserted.Id).ToNot(BeNil())
		})

		It("rejects a duplicate source id", func() {
			bolus := normalizedTest.RandomBolus()
			bolus.Id = nil

			_, err := repos.Boluses.Insert(ctx, bolus)
			Expect(err).ToNot(HaveOccurred())

			duplicate := normalizedTest.RandomBolus()
			duplicate.Id = nil
			duplicate.SourceId = bolus.SourceId

			_, err = repos.Boluses.Insert(ctx, duplicate)
			Expect(err).To(MatchError(normalized.ErrDuplicate))
			Expect(errors.Is(err, httpErrors.Duplicate)).To(BeTrue())
		})

		It("allows multiple records without a source id", func() {
			first := normalizedTest.RandomBolus()
			first.Id = nil
			first.SourceId = nil
			second := normalizedTest.RandomBolus()
			second.Id = nil
			second.SourceId = nil

			_, err := repos.Boluses.Insert(ctx, first)
			Expect(err).ToNot(HaveOccurred())
			_, err = repos.Boluses.Insert(ctx, second)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("FindBySourceId", func() {
		It("returns the inserted record", func() {
			bolus := normalizedTest.RandomBolus()
			bolus.Id = nil

			inserted, err := repos.Boluses.Insert(ctx, bolus)
			Expect(err).ToNot(HaveOccurred())

			found, err := repos.Boluses.FindBySourceId(ctx, *bolus.SourceId)
			Expect(err).ToNot(HaveOccurred())
			Expect(found.Id).To(Equal(inserted.Id))
			Expect(found.Insulin).To(Equal(bolus.Insulin))
		})

		It("returns a not found error for an unknown source id", func() {
			_, err := repos.Boluses.FindBySourceId(ctx, "does-not-exist")
			Expect(err).To(MatchError(normalized.ErrNotFound))
		})
	})

	Describe("Update", func() {
		It("replaces the stored record", func() {
			glucose := normalizedTest.RandomSensorGlucose()
			glucose.Id = nil

			inserted, err := repos.SensorGlucose.Insert(ctx, glucose)
			Expect(err).ToNot(HaveOccurred())

			inserted.Mgdl = pointer.FromAny(250.0)
			_, err = repos.SensorGlucose.Update(ctx, inserted)
			Expect(err).ToNot(HaveOccurred())

			found, err := repos.SensorGlucose.FindBySourceId(ctx, *glucose.SourceId)
			Expect(err).ToNot(HaveOccurred())
			Expect(found.Mgdl).To(HaveValue(Equal(250.0)))
		})

		It("fails without an id", func() {
			glucose := normalizedTest.RandomSensorGlucose()
			glucose.Id = nil

			_, err := repos.SensorGlucose.Update(ctx, glucose)
			Expect(err).To(HaveOccurred())
		})

		It("returns a not found error for an unknown id", func() {
			glucose := normalizedTest.RandomSensorGlucose()

			_, err := repos.SensorGlucose.Update(ctx, glucose)
			Expect(err).To(MatchError(normalized.ErrNotFound))
		})
	})
})
