package decompose_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/decompose"
	legacyTest "github.com/nocturne-org/nocturne/legacy/test"
	"github.com/nocturne-org/nocturne/normalized"
	normalizedTest "github.com/nocturne-org/nocturne/normalized/test"
	"github.com/nocturne-org/nocturne/pointer"
	"github.com/nocturne-org/nocturne/spans"
	spansTest "github.com/nocturne-org/nocturne/spans/test"
	"github.com/nocturne-org/nocturne/test"
)

var _ = Describe("TreatmentDecomposer", func() {
	var ctrl *gomock.Controller
	var mocks *normalizedTest.RepositoryMocks
	var spansService *spansTest.MockService
	var decomposer *decompose.TreatmentDecomposer
	var ctx context.Context

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mocks = normalizedTest.NewRepositoryMocks(ctrl)
		spansService = spansTest.NewMockService(ctrl)
		decomposer = decompose.NewTreatmentDecomposer(mocks.Bundle(), spansService, zap.NewNop().Sugar())
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	expectBolusInsert := func(capture **normalized.Bolus) {
		mocks.Boluses.EXPECT().
			FindBySourceId(gomock.Any(), gomock.Any()).
			Return(nil, normalized.ErrNotFound)
		mocks.Boluses.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, record *normalized.Bolus) (*normalized.Bolus, error) {
				if capture != nil {
					*capture = record
				}
				return record, nil
			})
	}

	expectCarbIntakeInsert := func(capture **normalized.CarbIntake) {
		mocks.CarbIntakes.EXPECT().
			FindBySourceId(gomock.Any(), gomock.Any()).
			Return(nil, normalized.ErrNotFound)
		mocks.CarbIntakes.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, record *normalized.CarbIntake) (*normalized.CarbIntake, error) {
				if capture != nil {
					*capture = record
				}
				return record, nil
			})
	}

	Describe("meal boluses", func() {
		It("produces a bolus and a carb intake with one correlation id", func() {
			treatment := legacyTest.RandomTreatment("Meal Bolus")
			treatment.Insulin = pointer.FromAny(4.5)
			treatment.Carbs = pointer.FromAny(60.0)

			var bolus *normalized.Bolus
			var carbs *normalized.CarbIntake
			expectBolusInsert(&bolus)
			expectCarbIntakeInsert(&carbs)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(2))

			Expect(bolus.Insulin).To(HaveValue(Equal(4.5)))
			Expect(bolus.Programmed).To(HaveValue(Equal(4.5)))
			Expect(bolus.Delivered).To(HaveValue(Equal(4.5)))
			Expect(carbs.Carbs).To(HaveValue(Equal(60.0)))
			Expect(bolus.CorrelationId).To(Equal(result.CorrelationId))
			Expect(carbs.CorrelationId).To(Equal(result.CorrelationId))
			Expect(bolus.SourceId).To(Equal(treatment.SourceId))
			Expect(carbs.SourceId).To(Equal(treatment.SourceId))
		})

		It("keeps explicit programmed and delivered amounts", func() {
			treatment := legacyTest.RandomTreatment("Correction Bolus")
			treatment.Insulin = pointer.FromAny(2.0)
			treatment.Programmed = pointer.FromAny(2.5)
			treatment.Delivered = pointer.FromAny(1.8)

			var bolus *normalized.Bolus
			expectBolusInsert(&bolus)

			_, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(bolus.Programmed).To(HaveValue(Equal(2.5)))
			Expect(bolus.Delivered).To(HaveValue(Equal(1.8)))
		})
	})

	Describe("carb corrections", func() {
		It("produces only a carb intake", func() {
			treatment := legacyTest.RandomTreatment("Carb Correction")
			treatment.Carbs = pointer.FromAny(15.0)

			var carbs *normalized.CarbIntake
			expectCarbIntakeInsert(&carbs)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
			Expect(carbs.Carbs).To(HaveValue(Equal(15.0)))
		})
	})

	Describe("the insulin and carbs rule", func() {
		It("produces both records for an unrecognized event type", func() {
			treatment := legacyTest.RandomTreatment("Custom Bolus")
			treatment.Insulin = pointer.FromAny(3.0)
			treatment.Carbs = pointer.FromAny(20.0)

			mocks.Boluses.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.Boluses.EXPECT().
				Insert(gomock.Any(), test.Match[*normalized.Bolus](func(record *normalized.Bolus) bool {
					return record.Insulin != nil && *record.Insulin == 3.0
				})).
				DoAndReturn(func(ctx context.Context, record *normalized.Bolus) (*normalized.Bolus, error) {
					return record, nil
				})
			mocks.CarbIntakes.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.CarbIntakes.EXPECT().
				Insert(gomock.Any(), test.Match[*normalized.CarbIntake](func(record *normalized.CarbIntake) bool {
					return record.Carbs != nil && *record.Carbs == 20.0
				})).
				DoAndReturn(func(ctx context.Context, record *normalized.CarbIntake) (*normalized.CarbIntake, error) {
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(2))
		})

		It("fills in the missing bolus for a carb correction with insulin", func() {
			treatment := legacyTest.RandomTreatment("Carb Correction")
			treatment.Insulin = pointer.FromAny(1.5)
			treatment.Carbs = pointer.FromAny(10.0)

			expectBolusInsert(nil)
			expectCarbIntakeInsert(nil)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(2))
		})

		It("does not duplicate records for a meal bolus", func() {
			treatment := legacyTest.RandomTreatment("Meal Bolus")
			treatment.Insulin = pointer.FromAny(4.0)
			treatment.Carbs = pointer.FromAny(45.0)

			expectBolusInsert(nil)
			expectCarbIntakeInsert(nil)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(2))
		})
	})

	Describe("bg checks", func() {
		It("prefers mgdl over glucose", func() {
			treatment := legacyTest.RandomTreatment("BG Check")
			treatment.Mgdl = pointer.FromAny(102.0)
			treatment.Glucose = pointer.FromAny(5.7)
			treatment.GlucoseType = pointer.FromAny("Finger")
			treatment.Units = pointer.FromAny("mg/dl")

			mocks.BGChecks.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.BGChecks.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.BGCheck) (*normalized.BGCheck, error) {
					Expect(record.Mgdl).To(HaveValue(Equal(102.0)))
					Expect(record.GlucoseType).To(Equal(pointer.FromAny(normalized.GlucoseTypeFinger)))
					Expect(record.Units).To(Equal(pointer.FromAny(normalized.UnitMgdl)))
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
		})
	})

	Describe("notes and announcements", func() {
		It("produces a regular note", func() {
			treatment := legacyTest.RandomTreatment("Note")
			treatment.Notes = pointer.FromAny("site feels itchy")

			mocks.Notes.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.Notes.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.Note) (*normalized.Note, error) {
					Expect(record.Text).To(HaveValue(Equal("site feels itchy")))
					Expect(record.IsAnnouncement).To(BeFalse())
					return record, nil
				})

			_, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
		})

		It("marks announcements", func() {
			treatment := legacyTest.RandomTreatment("Announcement")
			treatment.Notes = pointer.FromAny("low treated with juice")

			mocks.Notes.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.Notes.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.Note) (*normalized.Note, error) {
					Expect(record.IsAnnouncement).To(BeTrue())
					return record, nil
				})

			_, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("bolus wizard", func() {
		It("produces only a calculation when no insulin was entered", func() {
			treatment := legacyTest.RandomTreatment("Bolus Wizard")
			treatment.Carbs = pointer.FromAny(30.0)
			treatment.Glucose = pointer.FromAny(140.0)
			treatment.Recommended = pointer.FromAny(3.2)

			mocks.BolusCalculations.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.BolusCalculations.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.BolusCalculation) (*normalized.BolusCalculation, error) {
					Expect(record.BgInput).To(HaveValue(Equal(140.0)))
					Expect(record.Recommended).To(HaveValue(Equal(3.2)))
					Expect(record.Entered).To(BeNil())
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
		})

		It("produces a bolus alongside the calculation when insulin was delivered", func() {
			treatment := legacyTest.RandomTreatment("Bolus Wizard")
			treatment.Insulin = pointer.FromAny(3.0)
			treatment.Glucose = pointer.FromAny(140.0)

			expectBolusInsert(nil)
			mocks.BolusCalculations.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.BolusCalculations.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.BolusCalculation) (*normalized.BolusCalculation, error) {
					Expect(record.Entered).To(HaveValue(Equal(3.0)))
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(2))
		})
	})

	Describe("temp basals", func() {
		It("delegates to the span service", func() {
			treatment := legacyTest.RandomTreatment("Temp Basal")
			treatment.Duration = pointer.FromAny(30.0)
			treatment.Absolute = pointer.FromAny(0.75)

			span := &spans.StateSpan{Category: spans.CategoryBasalDelivery}
			spansService.EXPECT().
				CreateBasalDeliveryFromTreatment(gomock.Any(), treatment, gomock.Any()).
				Return(span, nil)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(ConsistOf(span))
		})

		It("propagates span service failures", func() {
			treatment := legacyTest.RandomTreatment("Temp Basal")

			spansService.EXPECT().
				CreateBasalDeliveryFromTreatment(gomock.Any(), treatment, gomock.Any()).
				Return(nil, context.DeadlineExceeded)

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(result).To(BeNil())
		})
	})

	Describe("profile switches", func() {
		It("upserts a profile span with an end computed from the duration", func() {
			treatment := legacyTest.RandomTreatment("Profile Switch")
			treatment.Profile = pointer.FromAny("Exercise")
			treatment.Duration = pointer.FromAny(120.0)

			spansService.EXPECT().
				UpsertStateSpan(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, span *spans.StateSpan) (*spans.StateSpan, error) {
					Expect(span.Category).To(Equal(spans.CategoryProfile))
					Expect(span.State).To(Equal("Active"))
					Expect(span.StartMills).To(Equal(treatment.Mills))
					Expect(span.EndMills).To(HaveValue(Equal(treatment.Mills + 120*60000)))
					Expect(span.OriginalId).To(Equal(treatment.SourceId))
					Expect(span.Metadata).To(HaveKeyWithValue("profile", "Exercise"))
					return span, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
		})

		It("leaves the span open when the duration is missing", func() {
			treatment := legacyTest.RandomTreatment("Profile Switch")

			spansService.EXPECT().
				UpsertStateSpan(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, span *spans.StateSpan) (*spans.StateSpan, error) {
					Expect(span.EndMills).To(BeNil())
					return span, nil
				})

			_, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("temporary overrides", func() {
		It("upserts an override span with the override settings as metadata", func() {
			treatment := legacyTest.RandomTreatment("Temporary Override")
			treatment.Reason = pointer.FromAny("Exercise")
			treatment.Duration = pointer.FromAny(60.0)
			treatment.TargetTop = pointer.FromAny(160.0)
			treatment.TargetBottom = pointer.FromAny(140.0)
			treatment.InsulinNeedsScaleFactor = pointer.FromAny(0.7)

			spansService.EXPECT().
				UpsertStateSpan(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, span *spans.StateSpan) (*spans.StateSpan, error) {
					Expect(span.Category).To(Equal(spans.CategoryOverride))
					Expect(span.State).To(Equal("Custom"))
					Expect(span.Metadata).To(HaveKeyWithValue("reason", "Exercise"))
					Expect(span.Metadata).To(HaveKeyWithValue("targetTop", "160"))
					Expect(span.Metadata).To(HaveKeyWithValue("targetBottom", "140"))
					Expect(span.Metadata).To(HaveKeyWithValue("insulinNeedsScaleFactor", "0.7"))
					Expect(span.Metadata).To(HaveKeyWithValue("enteredBy", *treatment.EnteredBy))
					return span, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
		})
	})

	Describe("device events", func() {
		It("produces a device event for a recognized maintenance type", func() {
			treatment := legacyTest.RandomTreatment("Site Change")
			treatment.Notes = pointer.FromAny("left arm")

			mocks.DeviceEvents.EXPECT().
				FindBySourceId(gomock.Any(), gomock.Any()).
				Return(nil, normalized.ErrNotFound)
			mocks.DeviceEvents.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.DeviceEvent) (*normalized.DeviceEvent, error) {
					Expect(record.EventType).To(Equal(normalized.DeviceEventSiteChange))
					Expect(record.Notes).To(HaveValue(Equal("left arm")))
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(HaveLen(1))
		})
	})

	Describe("unrecognized treatments", func() {
		It("produces an empty result with a correlation id", func() {
			treatment := legacyTest.RandomTreatment("Question")

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CorrelationId).ToNot(BeEmpty())
			Expect(result.CreatedRecords).To(BeEmpty())
			Expect(result.UpdatedRecords).To(BeEmpty())
		})
	})

	Describe("repeated decomposition", func() {
		It("updates existing records instead of inserting duplicates", func() {
			treatment := legacyTest.RandomTreatment("Correction Bolus")
			treatment.Insulin = pointer.FromAny(2.0)

			existing := normalizedTest.RandomBolus()
			existing.SourceId = treatment.SourceId

			mocks.Boluses.EXPECT().
				FindBySourceId(gomock.Any(), *treatment.SourceId).
				Return(existing, nil)
			mocks.Boluses.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, record *normalized.Bolus) (*normalized.Bolus, error) {
					Expect(record.Id).To(Equal(existing.Id))
					return record, nil
				})

			result, err := decomposer.Decompose(ctx, treatment)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedRecords).To(BeEmpty())
			Expect(result.UpdatedRecords).To(HaveLen(1))
		})
	})
})
