package service

import "fmt"

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Upload your study materials, set a goal and we'll
draft a plan for you.

Get started: %s

Best,
The %s Team`, name, appURL, appName)

	return subject, body
}

func planReadyEmailTemplate(name, goalTitle, goalURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your study plan for %q is ready", goalTitle)
	body := fmt.Sprintf(`Hi %s,

Your new study plan for %q is ready. Open it and generate today's lesson:
%s

Best,
The %s Team`, name, goalTitle, goalURL, appName)

	return subject, body
}
