package model

import "time"

// DefaultPhoto is stored when a bootcamp has no uploaded photo.
const DefaultPhoto = "no-photo.jpg"

// PointType is the only geometry type a Location carries.
const PointType = "Point"

// Career is one of the fixed program tracks a bootcamp may offer.
type Career string

const (
	CareerWebDevelopment    Career = "Web Development"
	CareerMobileDevelopment Career = "Mobile Development"
	CareerUIUX              Career = "UI/UX"
	CareerDataScience       Career = "Data Science"
	CareerBusiness          Career = "Business"
	CareerOther             Career = "Other"
)

// Careers lists every accepted Career literal.
var Careers = []Career{
	CareerWebDevelopment,
	CareerMobileDevelopment,
	CareerUIUX,
	CareerDataScience,
	CareerBusiness,
	CareerOther,
}

// IsCareer reports whether s is one of the accepted career literals.
func IsCareer(s string) bool {
	for _, c := range Careers {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Location is the geocoded form of a bootcamp's address.  A bootcamp either
// has a fully populated Location or none at all.
//
// Fields:
//  Type             – always "Point".
//  Coordinates      – [longitude, latitude].
//  FormattedAddress – provider formatted address line.
//  Street, City, State, Zipcode, Country – address components.
type Location struct {
	Type             string     `json:"type"`             // bootcamps.location_type
	Coordinates      [2]float64 `json:"coordinates"`      // bootcamps.longitude, bootcamps.latitude
	FormattedAddress string     `json:"formattedAddress"` // bootcamps.formatted_address
	Street           string     `json:"street"`           // bootcamps.street
	City             string     `json:"city"`             // bootcamps.city
	State            string     `json:"state"`            // bootcamps.state
	Zipcode          string     `json:"zipcode"`          // bootcamps.zipcode
	Country          string     `json:"country"`          // bootcamps.country
}

// Bootcamp is a training program listing stored in the `bootcamps` table.
// Address is write-only: it is consumed by enrichment and never persisted.
// Slug is derived from Name and must be recomputed whenever Name changes.
type Bootcamp struct {
	ID             string    `json:"id"`                                                                // bootcamps.id (uuid)
	Name           string    `json:"name" validate:"required,max=50"`                                   // bootcamps.name (unique)
	Slug           string    `json:"slug"`                                                              // bootcamps.slug
	Description    string    `json:"description" validate:"required,max=500"`                           // bootcamps.description
	Website        string    `json:"website,omitempty" validate:"omitempty,website"`                    // bootcamps.website
	Phone          string    `json:"phone,omitempty" validate:"max=20"`                                 // bootcamps.phone
	Email          string    `json:"email,omitempty" validate:"omitempty,looseemail"`                   // bootcamps.email
	Address        string    `json:"address,omitempty"`                                                 // never persisted
	Location       *Location `json:"location,omitempty"`                                                // bootcamps.location_* (nullable)
	Careers        []string  `json:"careers" validate:"required,min=1,dive,career"`                     // bootcamps.careers (JSON)
	AverageRating  *float64  `json:"averageRating,omitempty" validate:"omitempty,min=1,max=10"`         // bootcamps.average_rating (nullable)
	AverageCost    *float64  `json:"averageCost,omitempty"`                                             // bootcamps.average_cost (nullable)
	Photo          string    `json:"photo"`                                                             // bootcamps.photo
	Housing        bool      `json:"housing"`                                                           // bootcamps.housing
	JobAssistance  bool      `json:"jobAssistance"`                                                     // bootcamps.job_assistance
	JobGuarantee   bool      `json:"jobGuarantee"`                                                      // bootcamps.job_guarantee
	AcceptGi       bool      `json:"acceptGi"`                                                          // bootcamps.accept_gi
	CreatedAt      time.Time `json:"createdAt"`                                                         // bootcamps.created_at
}

// BootcampPatch carries the fields of an update request.  Nil fields are left
// unchanged on the stored bootcamp.
type BootcampPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	AverageRating *float64  `json:"averageRating"`
	AverageCost   *float64  `json:"averageCost"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// Apply copies every non-nil field of p onto b.
func (p BootcampPatch) Apply(b *Bootcamp) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Website != nil {
		b.Website = *p.Website
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.Careers != nil {
		b.Careers = append([]string(nil), (*p.Careers)...)
	}
	if p.AverageRating != nil {
		v := *p.AverageRating
		b.AverageRating = &v
	}
	if p.AverageCost != nil {
		v := *p.AverageCost
		b.AverageCost = &v
	}
	if p.Housing != nil {
		b.Housing = *p.Housing
	}
	if p.JobAssistance != nil {
		b.JobAssistance = *p.JobAssistance
	}
	if p.JobGuarantee != nil {
		b.JobGuarantee = *p.JobGuarantee
	}
	if p.AcceptGi != nil {
		b.AcceptGi = *p.AcceptGi
	}
}
