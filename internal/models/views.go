package models

// Response shapes. Each one lists exactly the fields its route returns so
// back-references never end up in a payload.

type CamperView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type ActivityView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

// CamperDetailView is the GET /campers/{id} body: the camper plus the
// activity behind each of its signups.
type CamperDetailView struct {
	ID      uint               `json:"id"`
	Name    string             `json:"name"`
	Age     int                `json:"age"`
	Signups []CamperSignupView `json:"signups"`
}

type CamperSignupView struct {
	Activity ActivityView `json:"activity"`
}

// SignupView is the POST /signups body.
type SignupView struct {
	ID         uint         `json:"id"`
	CamperID   uint         `json:"camper_id"`
	ActivityID uint         `json:"activity_id"`
	Time       int          `json:"time"`
	Activity   ActivityView `json:"activity"`
	Camper     CamperView   `json:"camper"`
}

func (c Camper) Summary() CamperView {
	return CamperView{ID: c.ID, Name: c.Name, Age: c.Age}
}

func (a Activity) Summary() ActivityView {
	return ActivityView{ID: a.ID, Name: a.Name, Difficulty: a.Difficulty}
}

// Detail expects Signups and their Activity to be loaded.
func (c Camper) Detail() CamperDetailView {
	out := CamperDetailView{
		ID:      c.ID,
		Name:    c.Name,
		Age:     c.Age,
		Signups: make([]CamperSignupView, 0, len(c.Signups)),
	}
	for _, s := range c.Signups {
		out.Signups = append(out.Signups, CamperSignupView{Activity: s.Activity.Summary()})
	}
	return out
}

// Created expects Camper and Activity to be loaded.
func (s Signup) Created() SignupView {
	return SignupView{
		ID:         s.ID,
		CamperID:   s.CamperID,
		ActivityID: s.ActivityID,
		Time:       s.Time,
		Activity:   s.Activity.Summary(),
		Camper:     s.Camper.Summary(),
	}
}

func CamperSummaries(campers []Camper) []CamperView {
	out := make([]CamperView, 0, len(campers))
	for _, c := range campers {
		out = append(out, c.Summary())
	}
	return out
}

func ActivitySummaries(activities []Activity) []ActivityView {
	out := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Summary())
	}
	return out
}
