/*
Copyright 2026 Altaira Labs.

SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package exposed

import (
	"context"
)

// FlightQuery filters the flight logs. Zero values are not sent.
type FlightQuery struct {
	Passenger   string
	Year        int
	Origin      string
	Destination string
	Page        int
	PerPage     int
}

// SearchFlights searches flight log entries via GET /flights.
func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) (*Envelope[Flight], error) {
	page, perPage := clampPaging(q.Page, q.PerPage, DefaultPerPage)
	query := newQuery().
		str(paramPassenger, q.Passenger).
		num(paramYear, q.Year).
		str(paramOrigin, q.Origin).
		str(paramDestination, q.Destination).
		paging(page, perPage).
		values()

	resp, err := c.get(ctx, OpSearchFlights, "/flights", query, false)
	if err != nil {
		return nil, err
	}
	return decode[Envelope[Flight]](OpSearchFlights, resp.body)
}
