package legacy_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nocturne-org/nocturne/legacy"
	legacyTest "github.com/nocturne-org/nocturne/legacy/test"
	"github.com/nocturne-org/nocturne/pointer"
	dbTest "github.com/nocturne-org/nocturne/store/test"
)

var _ = Describe("Repository", func() {
	var repo legacy.Repository[legacy.Treatment]
	var ctx context.Context

	BeforeEach(func() {
		repo = legacy.NewTreatmentsRepository(dbTest.GetTestDatabase())
		ctx = context.Background()
	})

	Describe("Save", func() {
		It("stores a record and replays it", func() {
			treatment := legacyTest.RandomTreatment("Meal Bolus")
			treatment.Insulin = pointer.FromAny(4.5)

			Expect(repo.Save(ctx, treatment)).To(Succeed())

			var found *legacy.Treatment
			err := repo.Each(ctx, func(record *legacy.Treatment) error {
				if record.SourceId != nil && *record.SourceId == *treatment.SourceId {
					found = record
				}
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(found).ToNot(BeNil())
			Expect(found.Insulin).To(HaveValue(Equal(4.5)))
		})

		It("replaces the record with the same source id", func() {
			treatment := legacyTest.RandomTreatment("Meal Bolus")
			treatment.Carbs = pointer.FromAny(30.0)
			Expect(repo.Save(ctx, treatment)).To(Succeed())

			treatment.Carbs = pointer.FromAny(45.0)
			Expect(repo.Save(ctx, treatment)).To(Succeed())

			var matches []*legacy.Treatment
			err := repo.Each(ctx, func(record *legacy.Treatment) error {
				if record.SourceId != nil && *record.SourceId == *treatment.SourceId {
					matches = append(matches, record)
				}
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Carbs).To(HaveValue(Equal(45.0)))
		})
	})

	Describe("Each", func() {
		It("visits records in event time order", func() {
			first := legacyTest.RandomTreatment("Note")
			second := legacyTest.RandomTreatment("Note")
			second.Mills = first.Mills + 1000

			Expect(repo.Save(ctx, second)).To(Succeed())
			Expect(repo.Save(ctx, first)).To(Succeed())

			var mills []int64
			err := repo.Each(ctx, func(record *legacy.Treatment) error {
				mills = append(mills, record.Mills)
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(len(mills)).To(BeNumerically(">=", 2))
			for i := 1; i < len(mills); i++ {
				Expect(mills[i]).To(BeNumerically(">=", mills[i-1]))
			}
		})

		It("stops when the callback fails", func() {
			Expect(repo.Save(ctx, legacyTest.RandomTreatment("Note"))).To(Succeed())

			err := repo.Each(ctx, func(record *legacy.Treatment) error {
				return context.Canceled
			})
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
