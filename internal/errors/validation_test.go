package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) fieldErrors(err error) map[string][]string {
	s.Require().Error(err)
	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	return fields
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("Pool", "is required")
	ve.AddFieldError("Utility", "is required")

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: Pool: is required; Utility: is required", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("Pool", "is required").
		Fieldf("MaxIterations", "must be positive, got %d", 0).
		RequiredField("Utility").
		InvalidField("Class", "unknown class")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(s.fieldErrors(err)["Class"][0], "unknown class")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", 130, 1, 106, vb)
	errors.ValidateRange("restarts", 4, 1, 64, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["level"][0], "must be between 1 and 106")
	s.Assert().NotContains(fields, "restarts")
}

func (s *ValidationTestSuite) TestValidateNumbers() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("MaxIterations", 0, vb)
	errors.ValidatePositive("MaxInvalidRetry", 100, vb)
	errors.ValidateNonNegative("InitialTemperature", -1, vb)
	errors.ValidateNonNegative("Other", 0, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields, "MaxIterations")
	s.Assert().Contains(fields, "InitialTemperature")
	s.Assert().NotContains(fields, "MaxInvalidRetry")
	s.Assert().NotContains(fields, "Other")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	presets := []string{"ehp", "dps_melee", "dps_spell"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("preset", "speed", presets, vb)
	errors.ValidateEnum("fallback", "ehp", presets, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["preset"][0], "must be one of: ehp, dps_melee, dps_spell")
	s.Assert().NotContains(fields, "fallback")
}
