package verify

import "fmt"

// Reason builds the caller-facing narrative for a verdict. It interpolates
// the leading facts and counter-arguments when present and otherwise falls
// back to a generic sentence naming the topic. Pure and deterministic.
//
// Recognized statuses: "true"/"verified", "false", "partially true",
// "misleading"; anything else yields the cannot-verify narrative.
func Reason(status, topic string, facts, counterArguments []string) string {
	switch status {
	case "true", "verified":
		if len(facts) > 0 {
			second := "scientific evidence supports this statement."
			if len(facts) > 1 {
				second = facts[1]
			}
			return fmt.Sprintf("This claim is TRUE. %s Additionally, %s", facts[0], second)
		}
		return fmt.Sprintf("This claim about %s appears to be TRUE based on available information, though specific supporting facts are not found in our database.", topic)

	case "false":
		if len(counterArguments) > 0 {
			support := "available evidence contradicts this statement."
			if len(facts) > 0 {
				support = facts[0]
			}
			return fmt.Sprintf("This claim is FALSE. %s In fact, %s", counterArguments[0], support)
		}
		return fmt.Sprintf("This claim about %s appears to be FALSE based on available information, though specific contradicting facts are not found in our database.", topic)

	case "partially true":
		if len(facts) > 0 && len(counterArguments) > 0 {
			return fmt.Sprintf("This claim is PARTIALLY TRUE. While %s, it's important to note that %s", facts[0], counterArguments[0])
		}
		return fmt.Sprintf("This claim about %s is PARTIALLY TRUE. It contains some accurate information but also includes inaccuracies or oversimplifications.", topic)

	case "misleading":
		if len(counterArguments) > 0 {
			return fmt.Sprintf("This claim is MISLEADING. %s The claim presents a distorted or incomplete view of the facts.", counterArguments[0])
		}
		return fmt.Sprintf("This claim about %s is MISLEADING. It presents information in a way that could lead to incorrect conclusions.", topic)

	default:
		return fmt.Sprintf("We cannot verify this claim about %s with sufficient confidence. More information or context would be needed to determine its accuracy.", topic)
	}
}
