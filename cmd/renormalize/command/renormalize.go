package command

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/decompose"
	"github.com/nocturne-org/nocturne/legacy"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Re-normalize stored glucose entries",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(renormalizeEntries) },
}

var treatmentsCmd = &cobra.Command{
	Use:   "treatments",
	Short: "Re-normalize stored treatments",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(renormalizeTreatments) },
}

var deviceStatusCmd = &cobra.Command{
	Use:   "devicestatus",
	Short: "Re-normalize stored device statuses",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(renormalizeDeviceStatus) },
}

func renormalizeEntries(repo legacy.Repository[legacy.Entry], decomposer *decompose.EntryDecomposer, logger *zap.SugaredLogger) error {
	ctx := context.Background()
	var created, updated int
	err := repo.Each(ctx, func(entry *legacy.Entry) error {
		result, err := decomposer.Decompose(ctx, entry)
		if err != nil {
			return err
		}
		created += len(result.CreatedRecords)
		updated += len(result.UpdatedRecords)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infow("re-normalized entries", "created", created, "updated", updated)
	return nil
}

func renormalizeTreatments(repo legacy.Repository[legacy.Treatment], decomposer *decompose.TreatmentDecomposer, logger *zap.SugaredLogger) error {
	ctx := context.Background()
	var created, updated int
	err := repo.Each(ctx, func(treatment *legacy.Treatment) error {
		result, err := decomposer.Decompose(ctx, treatment)
		if err != nil {
			return err
		}
		created += len(result.CreatedRecords)
		updated += len(result.UpdatedRecords)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infow("re-normalized treatments", "created", created, "updated", updated)
	return nil
}

func renormalizeDeviceStatus(repo legacy.Repository[legacy.DeviceStatus], decomposer *decompose.DeviceStatusDecomposer, logger *zap.SugaredLogger) error {
	ctx := context.Background()
	var created, updated int
	err := repo.Each(ctx, func(status *legacy.DeviceStatus) error {
		result, err := decomposer.Decompose(ctx, status)
		if err != nil {
			return err
		}
		created += len(result.CreatedRecords)
		updated += len(result.UpdatedRecords)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infow("re-normalized device statuses", "created", created, "updated", updated)
	return nil
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(treatmentsCmd)
	rootCmd.AddCommand(deviceStatusCmd)
}
