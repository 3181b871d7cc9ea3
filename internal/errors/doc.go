// Package errors provides the structured error type used across pokeduel.
//
// Errors carry a Code, a message and optional metadata, and wrap their cause
// so errors.Is / errors.As keep working.
//
// # Basic Usage
//
//	err := errors.NotFound("duel not found")
//	err := errors.InvalidArgumentf("unexpected weather %q", name)
//
// Adding metadata:
//
//	err := errors.FailedPrecondition("item cannot be removed").
//	    WithMeta("item", "griseous-orb")
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load party")
//	}
//
// # Codes used by the battle engine
//
//   - InvalidArgument: caller bug, e.g. a move effect naming an unknown weather
//   - FailedPrecondition: invalid operation on battle state, e.g. removing an
//     unremovable held item. The action is skipped, the battle continues.
//   - NotFound: unknown duel, species, move or item
//   - PermissionDenied: a user acting in a duel they are not part of
//   - AlreadyExists: a duel ID that is already stored
//   - Canceled: a simulation whose context ended before the battle did
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Dex == nil {
//	    vb.RequiredField("Dex")
//	}
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
