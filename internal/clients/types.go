package clients

import (
	"encoding/json"
	"time"
)

// Типизированные формы ответов апстримов. Декодируются клиентами,
// дальше с ними работает только normalize.

type APODPayload struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

type NEOFeedPayload struct {
	ElementCount     int                    `json:"element_count"`
	NearEarthObjects map[string][]NEOObject `json:"near_earth_objects"`
}

type NEOObject struct {
	NeoReferenceID    string `json:"neo_reference_id"`
	Name              string `json:"name"`
	EstimatedDiameter struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	IsPotentiallyHazardous bool               `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []NEOCloseApproach `json:"close_approach_data"`
}

type NEOCloseApproach struct {
	CloseApproachDate string `json:"close_approach_date"`
	MissDistance      struct {
		// Апстрим отдает километры строкой
		Kilometers string `json:"kilometers"`
	} `json:"miss_distance"`
}

// InsightPayload — ответ InSight weather: sol_keys плюс объект на каждый сол
// на верхнем уровне JSON, поэтому нужен свой Unmarshal.
type InsightPayload struct {
	SolKeys []string
	Sols    map[string]InsightSol
}

type InsightSol struct {
	AT  *InsightReading `json:"AT"`
	HWS *InsightReading `json:"HWS"`
	PRE *InsightReading `json:"PRE"`
	WD  *struct {
		MostCommon *struct {
			CompassPoint string `json:"compass_point"`
		} `json:"most_common"`
	} `json:"WD"`
	FirstUTC string `json:"First_UTC"`
	LastUTC  string `json:"Last_UTC"`
	Season   string `json:"Season"`
}

type InsightReading struct {
	Av float64 `json:"av"`
	Mn float64 `json:"mn"`
	Mx float64 `json:"mx"`
}

func (p *InsightPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.SolKeys = nil
	p.Sols = make(map[string]InsightSol)

	if keys, ok := raw["sol_keys"]; ok {
		if err := json.Unmarshal(keys, &p.SolKeys); err != nil {
			return err
		}
	}

	for _, key := range p.SolKeys {
		solRaw, ok := raw[key]
		if !ok {
			continue
		}
		var sol InsightSol
		if err := json.Unmarshal(solRaw, &sol); err != nil {
			return err
		}
		p.Sols[key] = sol
	}

	return nil
}

type LaunchPage struct {
	Count   int            `json:"count"`
	Results []LaunchResult `json:"results"`
}

type LaunchResult struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Net    time.Time `json:"net"`
	Status struct {
		Name string `json:"name"`
	} `json:"status"`
	Mission *struct {
		Name string `json:"name"`
	} `json:"mission"`
	Rocket struct {
		Configuration struct {
			FullName string `json:"full_name"`
		} `json:"configuration"`
	} `json:"rocket"`
	Pad struct {
		Name     string `json:"name"`
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"pad"`
	LaunchServiceProvider struct {
		Name string `json:"name"`
	} `json:"launch_service_provider"`
}
