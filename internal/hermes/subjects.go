package hermes

const (
	StreamName   = "SOURCING_EVENTS"
	StreamMaxAge = "168h" // 7 days

	streamSubjects = "sourcing.>"
)

func SubjectRuleEvaluated(ruleID string) string { return "sourcing.rule." + ruleID + ".evaluated" }
func SubjectRuleFailed(ruleID string) string    { return "sourcing.rule." + ruleID + ".failed" }
func SubjectRuleCreated(ruleID string) string   { return "sourcing.rule." + ruleID + ".created" }
func SubjectRuleUpdated(ruleID string) string   { return "sourcing.rule." + ruleID + ".updated" }
func SubjectRuleDeleted(ruleID string) string   { return "sourcing.rule." + ruleID + ".deleted" }

func SubjectLocationUpdated(locationID string) string {
	return "sourcing.location." + locationID + ".updated"
}
