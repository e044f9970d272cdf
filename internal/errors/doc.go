// Package errors provides structured errors for the build optimizer.
//
// Every error carries a Code that maps onto a gRPC status code, a message and
// optional metadata. Domain failures use a fixed mapping:
//
//   - invalid sampler weights, bad hyperparameters: InvalidArgument
//   - a gear category with no candidates, unknown presets: NotFound
//   - malformed catalog data such as a bad "min-max" damage string: DataLoss
//   - a weapon without a recognised weapon category: Internal
//
// Early termination of an annealing run is not an error; it is reported on
// the run result.
//
// Creating and wrapping:
//
//	err := errors.NotFoundf("no candidates for category %s", cat).
//	    WithMeta("category", string(cat))
//
//	if err := repo.Put(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to store catalog")
//	}
//
// Config validation:
//
//	vb := errors.NewValidationBuilder()
//	if c.Pool == nil {
//	    vb.RequiredField("Pool")
//	}
//	errors.ValidatePositive("MaxIterations", c.MaxIterations, vb)
//	return vb.Build()
//
// Handlers convert with ToGRPCError; clients convert back with FromGRPCError.
package errors
