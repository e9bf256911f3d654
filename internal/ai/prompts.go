package ai

import "fmt"

func intendedUsePrompt(productCode, deviceCategory, predicateName string) string {
	predicateLine := ""
	if predicateName != "" {
		predicateLine = fmt.Sprintf("- Predicate Device: %s\n", predicateName)
	}
	return fmt.Sprintf(`You are an expert in drafting FDA 510(k) submission documents.

Generate a clear and concise Intended Use Statement for a medical device based on the following inputs:

- Product Code: %s
- Device Category: %s
%s
Your statement must:
- Clearly define the medical purpose of the device.
- Identify the target patient population (e.g., adults, pediatrics).
- Specify the clinical indications and context of use (e.g., monitoring, diagnosis, treatment).
- Be written in a formal tone suitable for FDA submissions.
- Align with FDA expectations for diagnostic devices.

Ensure the output is focused, factual, and does not exceed 1000 words.`,
		productCode, deviceCategory, predicateLine)
}

func predicatePrompt(productCode, description string) string {
	if description == "" {
		description = "No description provided"
	}
	return fmt.Sprintf(`Suggest up to 4 FDA-cleared predicate devices for a medical device with:
- FDA Product Code: %s
- Description: %s

For each device, provide:
- Device Name
- K-number (e.g., K123456)
- Manufacturer
- Clearance Date
- Confidence score (0.0 to 1.0)

Return the results as a JSON array of objects with the keys
"name", "k_number", "manufacturer", "clearance_date" and "confidence".
Return only the JSON array, no prose.`,
		productCode, description)
}

func sectionDraftPrompt(guideline, sectionInput string) string {
	if guideline == "" {
		guideline = "510(k)"
	}
	return fmt.Sprintf(`You are an FDA documentation expert.
Generate or edit the specific section described below for a device submission.
Section Input: %s
Guideline: %s
Follow proper formatting and regulatory expectations.`,
		sectionInput, guideline)
}

func rewritePrompt(guideline, selectedText, instruction string) string {
	if guideline == "" {
		guideline = "510(k)"
	}
	return fmt.Sprintf(`You are an FDA regulatory editor.
The user has selected this section of the document:
"%s"
Their instruction is:
"%s"
Update or rewrite the selected section according to FDA %s standards.
Maintain formatting and technical correctness.`,
		selectedText, instruction, guideline)
}
