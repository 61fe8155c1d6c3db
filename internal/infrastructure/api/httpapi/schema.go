package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"assignment-validator/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// questionAndFactsPayload uses pointers so a missing key can be told apart
// from an empty value. facts may be absent or null.
type questionAndFactsPayload struct {
	Question *string   `json:"question" validate:"required"`
	Facts    *[]string `json:"facts"`
	Status   *string   `json:"status" validate:"required"`
}

func decodeQuestionAndFacts(body []byte) (*entity.QuestionAndFacts, error) {
	var payload questionAndFactsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, describeDecodeError(err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, describeValidationError(err)
	}

	result := &entity.QuestionAndFacts{
		Question: *payload.Question,
		Status:   entity.FactsStatus(*payload.Status),
	}
	if payload.Facts != nil {
		result.Facts = *payload.Facts
	}
	return result, nil
}

func decodeSubmitResponse(body []byte) (*entity.SubmitResponse, error) {
	var resp entity.SubmitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, describeDecodeError(err)
	}
	if resp == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	return &resp, nil
}

func describeDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return fmt.Errorf("expected a JSON object, got %s", typeErr.Value)
		}
		return fmt.Errorf("field %q: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("invalid JSON at offset %d: %w", syntaxErr.Offset, err)
	}

	return fmt.Errorf("invalid JSON: %w", err)
}

func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("field %q is %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
