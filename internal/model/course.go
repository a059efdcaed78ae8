package model

import "time"

// Course is a program offered by a bootcamp.  It lives in the `courses`
// table and references its owning bootcamp through BootcampID.  Courses are
// removed explicitly before their bootcamp is deleted; the schema does not
// cascade on its own.
//
// Fields:
//  ID                   – primary key (uuid).
//  Title                – course title.
//  Description          – course description.
//  Weeks                – duration in weeks (free text, e.g. "12").
//  Tuition              – tuition cost.
//  MinimumSkill         – beginner, intermediate or advanced.
//  ScholarshipAvailable – whether scholarships are offered.
//  BootcampID           – back-reference to bootcamps.id.
//  CreatedAt            – creation timestamp.
type Course struct {
	ID                   string    `json:"id"`                                                              // courses.id
	Title                string    `json:"title" validate:"required,max=100"`                               // courses.title
	Description          string    `json:"description" validate:"required"`                                 // courses.description
	Weeks                string    `json:"weeks" validate:"required"`                                       // courses.weeks
	Tuition              float64   `json:"tuition" validate:"required"`                                     // courses.tuition
	MinimumSkill         string    `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"` // courses.minimum_skill
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`                                            // courses.scholarship_available
	BootcampID           string    `json:"bootcamp"`                                                        // courses.bootcamp_id
	CreatedAt            time.Time `json:"createdAt"`                                                       // courses.created_at
}
