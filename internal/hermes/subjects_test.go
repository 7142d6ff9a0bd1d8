package hermes

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubjectsFallUnderStream(t *testing.T) {
	prefix := strings.TrimSuffix(streamSubjects, ">")
	subjects := []string{
		SubjectRuleEvaluated("r1"),
		SubjectRuleFailed("r1"),
		SubjectRuleCreated("r1"),
		SubjectRuleUpdated("r1"),
		SubjectRuleDeleted("r1"),
		SubjectLocationUpdated("42"),
	}
	for _, s := range subjects {
		assert.True(t, strings.HasPrefix(s, prefix), "subject %s outside stream %s", s, streamSubjects)
	}
}

func TestSubjectFormat(t *testing.T) {
	assert.Equal(t, "sourcing.rule.abc.evaluated", SubjectRuleEvaluated("abc"))
	assert.Equal(t, "sourcing.location.7.updated", SubjectLocationUpdated("7"))
}

func TestStreamMaxAgeParses(t *testing.T) {
	d, err := time.ParseDuration(StreamMaxAge)
	assert.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)
}
