package service

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpline/pkg/curve"
)

func readYaml(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestDecodeDesignConfig_Defaults(t *testing.T) {
	cfg, err := DecodeDesignConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDesignConfig(), cfg)

	cfg, err = DecodeDesignConfig(readYaml(t, "project: demo\n"))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Project)
	assert.Equal(t, 800.0, cfg.Flow)
	assert.Len(t, cfg.Profile.Segments, 7)
}

func TestDecodeDesignConfig_Overrides(t *testing.T) {
	v := readYaml(t, `
flow: 600
pipe:
  diameter: 0.7
  friction: Darcy
  darcyFactor: 0.018
  minorLossK: 0.2
materials:
  hdpe:
    roughness: 0.007e-3
    allowableStress: 8e6
profile:
  startElevation: 100
  segments:
    - {id: A, length: 1000, dz: 50, station: S1, material: hdpe}
    - {id: B, length: 2000, elevationChange: 80, station: S1, adoptedThickness: 12}
pump:
  model: test
  head: [[0, 200], [100, 150], [200, 60]]
  efficiency:
    - {flow: 0, value: 0}
    - {flow: 200, value: 80}
  maxParallel: 4
stations:
  - {name: S1, pumps: 2, adoptedThickness: 10}
tank:
  autonomy: 10m
  height: 4
`)
	cfg, err := DecodeDesignConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 600.0, cfg.Flow)
	assert.Equal(t, 0.7, cfg.Pipe.Diameter)
	assert.Equal(t, FrictionDarcy, cfg.Pipe.Friction)
	assert.Equal(t, 0.018, cfg.Pipe.DarcyFactor)
	assert.Equal(t, 0.2, cfg.Pipe.MinorLossK)

	assert.Equal(t, Material{Roughness: 0.007e-3, AllowableStress: 8e6}, cfg.Materials["hdpe"])
	assert.Contains(t, cfg.Materials, "x65")

	assert.Equal(t, 100.0, cfg.Profile.StartElevation)
	assert.Equal(t, []Segment{
		{ID: "A", Length: 1000, ElevationChange: 50, Station: "S1", Material: "hdpe"},
		{ID: "B", Length: 2000, ElevationChange: 80, Station: "S1", AdoptedThickness: 12},
	}, cfg.Profile.Segments)

	assert.Equal(t, "test", cfg.Pump.Model)
	assert.Equal(t, []curve.Point{{Flow: 0, Value: 200}, {Flow: 100, Value: 150}, {Flow: 200, Value: 60}}, cfg.Pump.Head)
	assert.Equal(t, []curve.Point{{Flow: 0, Value: 0}, {Flow: 200, Value: 80}}, cfg.Pump.Efficiency)
	// 未配置的曲线保留默认值
	assert.Equal(t, DefaultDesignConfig().Pump.Power, cfg.Pump.Power)
	assert.Equal(t, 1, cfg.Pump.MinParallel)
	assert.Equal(t, 4, cfg.Pump.MaxParallel)

	assert.Equal(t, []StationConfig{{Name: "S1", Pumps: 2, AdoptedThickness: 10}}, cfg.Stations)
	assert.Equal(t, 10*time.Minute, cfg.Tank.Autonomy)
	assert.Equal(t, 4.0, cfg.Tank.Height)
}

func TestDecodeDesignConfig_PartialMaterial(t *testing.T) {
	v := readYaml(t, "materials:\n  x65:\n    roughness: 0.0001\n  steel:\n    allowableStress: 120e6\n")
	cfg, err := DecodeDesignConfig(v)
	require.NoError(t, err)

	assert.Equal(t, Material{Roughness: 0.0001, YieldStrength: 448e6, DesignFactor: 0.72}, cfg.Materials["x65"])
	assert.Equal(t, Material{Roughness: 0.045e-3, AllowableStress: 120e6}, cfg.Materials["steel"])
	// 默认配置不受影响
	assert.Equal(t, 0.045e-3, DefaultDesignConfig().Materials["x65"].Roughness)

	svc, err := NewService(cfg)
	require.NoError(t, err)
	res, err := svc.Design()
	require.NoError(t, err)
	assert.InDelta(t, 322.56, res.Thickness[0].Allowable, 1e-9)
}

func TestDecodeDesignConfig_ErrorsNameService(t *testing.T) {
	_, err := DecodeDesignConfig(readYaml(t, "pipe:\n  friction: colebrook\n"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "service: invalid input"), err.Error())
}

func TestDecodeDesignConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"friction model": "pipe:\n  friction: colebrook\n",
		"segment id":     "profile:\n  segments:\n    - {length: 10}\n",
		"segment length": "profile:\n  segments:\n    - {id: A, length: abc}\n",
		"station name":   "stations:\n  - {pumps: 2}\n",
		"station pumps":  "stations:\n  - {name: S1, pumps: many}\n",
		"point arity":    "pump:\n  head: [[1, 2, 3]]\n",
		"point value":    "pump:\n  head: [[1, x]]\n",
		"autonomy":       "tank:\n  autonomy: soon\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDesignConfig(readYaml(t, doc))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDesignConfig_MaterialLookup(t *testing.T) {
	cfg := DefaultDesignConfig()

	m, err := cfg.material("")
	require.NoError(t, err)
	assert.Equal(t, cfg.Materials["x65"], m)

	_, err = cfg.material("unobtainium")
	assert.ErrorIs(t, err, ErrInvalidInput)

	st, ok := cfg.station("Est.2")
	assert.True(t, ok)
	assert.Equal(t, 4, st.Pumps)
	_, ok = cfg.station("")
	assert.False(t, ok)
}
