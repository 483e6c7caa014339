// Package codec converts the list and set fields of programs (exercises,
// completion ledger, rest day activities) to and from their persisted JSON form.
// Decoding never fails: malformed input degrades to an empty value and is reported.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/fitprogram/internal/program"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type Codec struct {
	// optional, counts degraded decodes
	decodeFailures prometheus.Counter
}

func New(decodeFailures prometheus.Counter) *Codec {
	return &Codec{
		decodeFailures: decodeFailures,
	}
}

func (c *Codec) EncodeExercises(exercises []program.Exercise) ([]byte, error) {
	if exercises == nil {
		exercises = []program.Exercise{}
	}
	return encode("exercises", exercises)
}

// DecodeExercises returns an empty list when data is empty or malformed.
// owner identifies the row in logs.
func (c *Codec) DecodeExercises(owner string, data []byte) []program.Exercise {
	exercises, ok := decode[[]program.Exercise](c, "exercises", owner, data)
	if !ok || exercises == nil {
		return []program.Exercise{}
	}
	return exercises
}

func (c *Codec) EncodePerformed(exercises []program.PerformedExercise) ([]byte, error) {
	if exercises == nil {
		exercises = []program.PerformedExercise{}
	}
	return encode("performed exercises", exercises)
}

func (c *Codec) DecodePerformed(owner string, data []byte) []program.PerformedExercise {
	exercises, ok := decode[[]program.PerformedExercise](c, "performed exercises", owner, data)
	if !ok || exercises == nil {
		return []program.PerformedExercise{}
	}
	return exercises
}

func (c *Codec) EncodeLedger(ledger program.Ledger) ([]byte, error) {
	return encode("completed days", ledger)
}

// DecodeLedger returns an empty ledger when data is empty, malformed or holds
// an unparsable day key.
func (c *Codec) DecodeLedger(owner string, data []byte) program.Ledger {
	ledger, ok := decode[program.Ledger](c, "completed days", owner, data)
	if !ok {
		return program.Ledger{}
	}
	return ledger
}

func (c *Codec) EncodeActivities(activities []string) ([]byte, error) {
	if activities == nil {
		activities = []string{}
	}
	return encode("activities", activities)
}

func (c *Codec) DecodeActivities(owner string, data []byte) []string {
	activities, ok := decode[[]string](c, "activities", owner, data)
	if !ok || activities == nil {
		return []string{}
	}
	return activities
}

func encode(kind string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", program.ErrSerialization, kind, err)
	}
	return data, nil
}

func decode[T any](c *Codec, kind, owner string, data []byte) (T, bool) {
	var v T
	if len(data) == 0 {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Errorf("decode %s of [%s] failed, using empty value: %s", kind, owner, err)
		if c.decodeFailures != nil {
			c.decodeFailures.Inc()
		}
		var empty T
		return empty, false
	}
	return v, true
}
