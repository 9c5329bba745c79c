package progression

import "encoding/json"

const (
	featureKeyVolumeScale     = "volume_scale"
	featureKeyIntensityScale  = "intensity_scale"
	featureKeyProgressionBias = "progression_bias"
)

// FeatureVector is the plan-generation input attached to a user. On the wire
// it is one flat map of named numbers; the adjustment fields are typed here,
// anything else the model consumes rides along in Extra. A vector with
// nothing set is valid and means "no prior plan".
type FeatureVector struct {
	VolumeScale     float64
	IntensityScale  float64
	ProgressionBias float64
	Extra           map[string]float64
}

func (fv FeatureVector) MarshalJSON() ([]byte, error) {
	flat := make(map[string]float64, len(fv.Extra)+3)
	for k, v := range fv.Extra {
		flat[k] = v
	}
	// All three adjustment keys travel together. A bias of 0 is a real
	// value and must overwrite whatever the previous week left behind.
	if fv.VolumeScale != 0 || fv.IntensityScale != 0 || fv.ProgressionBias != 0 {
		flat[featureKeyVolumeScale] = fv.VolumeScale
		flat[featureKeyIntensityScale] = fv.IntensityScale
		flat[featureKeyProgressionBias] = fv.ProgressionBias
	}
	return json.Marshal(flat)
}

func (fv *FeatureVector) UnmarshalJSON(data []byte) error {
	var flat map[string]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	*fv = FeatureVector{}
	for k, v := range flat {
		switch k {
		case featureKeyVolumeScale:
			fv.VolumeScale = v
		case featureKeyIntensityScale:
			fv.IntensityScale = v
		case featureKeyProgressionBias:
			fv.ProgressionBias = v
		default:
			if fv.Extra == nil {
				fv.Extra = map[string]float64{}
			}
			fv.Extra[k] = v
		}
	}
	return nil
}
