package trakt

import (
	"context"
	"encoding/json"
	"errors"
)

// crewDepartments are the department keys flattened into a single crew
// list when decoding credits. Departments absent from a response simply
// contribute no members.
var crewDepartments = []string{"production", "writing", "crew", "camera", "sound"}

// checkRequired runs required-field validation when the type declares it.
func checkRequired(v any) error {
	if val, ok := v.(validator); ok {
		return val.validate()
	}
	return nil
}

func decodeErr(err error) error {
	var mf *missingFieldError
	if errors.As(err, &mf) {
		return &DecodeError{Field: mf.field, Err: err}
	}
	return &DecodeError{Err: err}
}

// getObject issues the request and decodes the body into a single typed
// object. A body that parses but lacks a required field is a DecodeError
// naming the field.
func getObject[T any](ctx context.Context, c *Client, r request) (*T, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, decodeErr(err)
	}
	if err := checkRequired(&v); err != nil {
		return nil, decodeErr(err)
	}
	return &v, nil
}

// getList issues the request and decodes the body as a list of typed
// objects. Decoding is lenient: an element that fails to parse or is
// missing a required field is dropped and the rest are returned.
func getList[T any](ctx context.Context, c *Client, r request) ([]T, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, decodeErr(err)
	}

	return decodeElements[T](c, raw), nil
}

// decodeElements applies the lenient per-element decode shared by every
// list-shaped payload.
func decodeElements[T any](c *Client, raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for i, elem := range raw {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			c.logger.Debug().Err(err).Int("index", i).Msg("Dropping undecodable list element")
			continue
		}
		if err := checkRequired(&v); err != nil {
			c.logger.Debug().Err(err).Int("index", i).Msg("Dropping list element missing required field")
			continue
		}
		out = append(out, v)
	}
	return out
}

// getRawMap issues the request and returns the parsed JSON object as-is.
func (c *Client) getRawMap(ctx context.Context, r request) (map[string]any, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var v map[string]any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, decodeErr(err)
	}
	return v, nil
}

// getRawList issues the request and returns the parsed JSON list as-is.
func (c *Client) getRawList(ctx context.Context, r request) ([]any, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var v []any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, decodeErr(err)
	}
	return v, nil
}

// getCastAndCrew decodes a credits payload: a "cast" list plus a "crew"
// mapping keyed by department, flattened into one crew list.
func (c *Client) getCastAndCrew(ctx context.Context, r request) (*CastAndCrew, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Cast []json.RawMessage            `json:"cast"`
		Crew map[string][]json.RawMessage `json:"crew"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, decodeErr(err)
	}

	result := &CastAndCrew{
		Cast: decodeElements[CastMember](c, envelope.Cast),
		Crew: make([]CrewMember, 0),
	}
	for _, dept := range crewDepartments {
		members, ok := envelope.Crew[dept]
		if !ok {
			continue
		}
		result.Crew = append(result.Crew, decodeElements[CrewMember](c, members)...)
	}
	return result, nil
}
