package domain

import "time"

// MapPoint is a pin on the public marketing map. Points may link to an object
// so staff can jump from the map to the portal record.
type MapPoint struct {
	PointID   string    `json:"id" dynamodbav:"point_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Lat       float64   `json:"lat" dynamodbav:"lat"`
	Lng       float64   `json:"lng" dynamodbav:"lng"`
	ObjectID  *string   `json:"object_id,omitempty" dynamodbav:"object_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type MapPointInput struct {
	Title    string  `json:"title" validate:"required"`
	Lat      float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng      float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	ObjectID *string `json:"object_id"`
}
