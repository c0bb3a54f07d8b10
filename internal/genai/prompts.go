// Package genai provides integration with LLM chat APIs.
// This file contains the advisor system prompts and context templates.
package genai

import (
	"fmt"
	"strings"
	"time"
)

const promptDivider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// campusTimezone is where the university lives; "today" in a student
// question means today in Kamp-Lintfort, not in the server's timezone.
const campusTimezone = "Europe/Berlin"

// CampusNow returns the current time on campus.
// Falls back to UTC if the timezone database is unavailable.
func CampusNow() time.Time {
	loc, err := time.LoadLocation(campusTimezone)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}

// GlobalKnowledge renders the background facts every answer can rely on:
// the current campus date and the degree program structure. The clock is a
// parameter so tests can pin it.
func GlobalKnowledge(now time.Time) string {
	currentDate := now.Format("Monday, January 02, 2006")
	currentTime := now.Format("15:04")
	currentDay := now.Format("Monday")

	return fmt.Sprintf(`
%[1]s
CURRENT DATE & TIME
%[1]s
Today is: %[2]s
Current time: %[3]s (Germany, Kamp-Lintfort)
Current day: %[4]s

When a student asks "What classes do I have today?", use %[4]s to look up their schedule.

%[1]s
DEGREE PROGRAM FACTS
%[1]s
Program: Infotronic Systems Engineering (ISE)
Institution: Rhine-Waal University of Applied Sciences, Kamp-Lintfort Campus
Duration: 7 Semesters (3.5 years)
Total Credits: 210 ECTS
Language: English

SEMESTER STRUCTURE:
- Semesters 1-3: Foundation courses (Mathematics, Physics, Programming, Electronics)
- Semesters 4-5: Advanced topics + Electives (you choose specialization areas)
- Semester 6: Internship OR Study Abroad (30 ECTS, student chooses ONE option)
- Semester 7: Bachelor thesis (12 ECTS) + Bachelor workshops/colloquium

MODULE CODE FORMAT:
- CI_X.YY where X = semester number
- CI_W.YY = Elective modules (typically taken in semesters 4-5)
- CI_K.YY = Key Competence modules (soft skills, languages, business)

SEMESTER SEASONS:
- Winter Semesters: 1, 3, 5, 7 (start in September/October)
- Summer Semesters: 2, 4, 6 (start in March/April)
- Students can take modules from earlier semesters if the season matches

CLASS TYPES:
- L = Lecture (Vorlesung)
- E = Exercise/Tutorial (Übung)
- P = Practical/Lab (Praktikum)
- L&E = Combined Lecture and Exercise
- PT = Lab Project
- SL = Self-Learning

%[1]s
`, promptDivider, currentDate, currentTime, currentDay)
}

// ListInstruction renders a verbatim module list block.
// The model is told to present the list exactly as resolved by the query
// engine instead of reconstructing it from memory.
func ListInstruction(modules []string) string {
	if len(modules) == 0 {
		return ""
	}

	return fmt.Sprintf(`
%[1]s
[OFFICIAL MODULE LIST - USE EXACTLY AS SHOWN]
%[1]s

%[2]s

MANDATORY INSTRUCTIONS FOR THIS LIST:
1. Present this list EXACTLY as shown above
2. Do NOT add extra information about credit points, prerequisites, or other details unless the Context provides them
3. If the list is empty, tell the user no modules match their criteria
%[1]s
`, promptDivider, strings.Join(modules, "\n"))
}

// ModuleDetails renders retrieved handbook text for one module together with
// presentation instructions. The instructions pin down the fields students
// most often get wrong answers about (duration, credits vs ECTS, entry
// requirements).
func ModuleDetails(code, name string, docs []string) string {
	combined := strings.Join(docs, "\n\n")

	return fmt.Sprintf(`
%[1]s
MODULE INFORMATION: %[3]s (%[2]s)
%[1]s

EXTRACTED FROM MODULE HANDBOOK:

%[4]s

%[1]s
IMPORTANT INSTRUCTIONS FOR PRESENTING THIS MODULE:
%[1]s

Present the information in this structure:

1. **Basic Information**
   - Code: %[2]s
   - Workload: [Extract from "Workload" field - total hours per semester]
   - Credits/ECTS: [Extract from "Credits" field - these are the SAME thing]
   - Level/Semester: [Extract from "Level of Module" field]
   - Frequency: [Extract from "Frequency of offer" - Winter/Summer semester]
   - Duration: [Usually 1 semester - courses run for ONE semester only unless explicitly stated]

2. **Course Structure**
   - Courses: [Extract from "Courses" - e.g., "4L + 2E" means 4 hours lecture + 2 hours exercise]
   - Teaching Time: [Official class hours per week]
   - Self-study: [Recommended self-study hours]
   - Group Size: [Maximum students in class]

3. **Learning Outcomes / Competences**
   [Extract from "Learning outcomes / Competences" section]

4. **Content**
   [Extract from "Content" section - topics taught]

5. **Teaching Methods**
   [Extract from "Teaching methods" - Lectures, Exercises, Seminars, etc.]

6. **Entry Requirements**
   [Extract from "Entry requirements" - prerequisites from previous semesters]
   Note: First semester courses typically have NO entry requirements

7. **Assessment**
   [Extract from "Types of assessment" - Graded/Certification/Oral exam, etc.]

8. **Requirements for Credit Points**
   [Extract from "Requirements for the award of credit points"]

9. **Professor in Charge**
   [Extract from "Person in charge of module"]

10. **Additional Information**
    [Extract from "Additional Information" - recommended books, papers, etc.]

CRITICAL REMINDERS:
- Duration is ALWAYS 1 semester unless explicitly stated otherwise in the handbook
- Credit points and ECTS are the SAME thing (use the value from the handbook)
- Type of assessment must match EXACTLY what's in the handbook
- Entry requirements: Only list if explicitly stated, otherwise say "None" or "Not specified"
`, promptDivider, code, name, combined)
}

// hasScheduleContext reports whether the context block carries schedule data.
// Schedule answers get a stricter prompt so the model presents times and
// rooms verbatim instead of paraphrasing around them.
func hasScheduleContext(context string) bool {
	return strings.Contains(context, "[OFFICIAL CLASS SCHEDULE") ||
		strings.Contains(context, "SCHEDULE_INFO") ||
		strings.Contains(context, "SEMESTER_MISMATCH")
}

// BuildSystemPrompt assembles the full system prompt for one question.
// listInstruction may be empty; context holds whatever the query engine
// resolved (schedule rows, handbook excerpts, or a [SYSTEM] directive).
func BuildSystemPrompt(now time.Time, context, question, listInstruction string) string {
	knowledge := GlobalKnowledge(now)

	if hasScheduleContext(context) {
		return fmt.Sprintf(`you are zero, the academic advisor bot for rhine-waal university's infotronic systems engineering program.

%s

--- CORE RULES ---
1. BE CONCISE: answer directly, no unnecessary context
2. BE FACTUAL: only use the data provided below, never speculate
3. NO FLUFF: don't say "according to your profile" or "since it's thursday" unless directly relevant
4. when data shows no classes: state it clearly and helpfully
5. when semester doesn't match season: explain winter vs summer semesters

--- RESPONSE STYLE ---
GOOD: "your signals class is monday 14:00-15:30 (lecture) and 16:00-17:30 (exercise), hörsaal building 1, prof. dr. strumpen."
BAD: "according to your student profile, since you're in semester 2 and it's thursday which falls under summer semester season, let me check..."

GOOD: "you're in 2nd semester which runs in summer. winter is for semesters 1, 3, 5, 7. enjoy your break!"
BAD: "i apologize that i don't have information directly available. however, according to your student profile..."

%s

--- DATA PROVIDED ---
%s

student question: %s
`, knowledge, listInstruction, context, question)
	}

	return fmt.Sprintf(`you are zero, academic advisor bot for rhine-waal university's infotronic systems engineering.

%s
%s

--- CORE RULES ---
1. BE CONCISE: answer directly, no fluff
2. BE FACTUAL: only use provided data, never speculate or add general knowledge
3. if asking about a specific module, use rhine-waal's data only, not general definitions
4. if data missing, say "i don't have that in the university documents"
5. when listing modules, present complete list without commentary

--- DATA AVAILABLE ---
%s

student question: %s
`, knowledge, listInstruction, context, question)
}

// BuildMessages wraps the system prompt and chat history into the message
// list sent to the provider. Old system messages in the history are dropped;
// each turn gets a freshly built system prompt.
func BuildMessages(systemPrompt string, history []Message, question string) []Message {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	for _, m := range history {
		if m.Role == RoleUser || m.Role == RoleAssistant {
			messages = append(messages, m)
		}
	}
	messages = append(messages, Message{Role: RoleUser, Content: question})
	return messages
}
