package duco

// Shared fixtures for the package tests, anonymized captures from a DucoBox
// Energy Comfort with a battery switch, a CO₂ sensor and a humidity sensor on
// the network.

func leaf(val interface{}) map[string]interface{} {
	return map[string]interface{}{"Val": val}
}

func tunableLeaf(val, min, max, inc interface{}) map[string]interface{} {
	return map[string]interface{}{"Val": val, "Min": min, "Max": max, "Inc": inc}
}

func infoFixture() Section {
	return Section{
		"General": map[string]interface{}{
			"Board": map[string]interface{}{
				"ApiVersion":     leaf("2.5.2.0"),
				"SwVersionBox":   leaf("19156.7.7.0"),
				"BoxName":        leaf("ENERGY"),
				"BoxSubType":     leaf(50),
				"BoxSubTypeName": leaf("COMFORT_325_R"),
				"SerialDucoBox":  leaf("P000000-000000-001"),
				"UpTime":         leaf(10936),
			},
			"Lan": map[string]interface{}{
				"Mode":     leaf("WIFI_CLIENT"),
				"Ip":       leaf("192.168.0.100"),
				"Mac":      leaf("aa:bb:cc:dd:ee:ff"),
				"RssiWifi": leaf(-56),
			},
		},
		"Diag": map[string]interface{}{
			"Errors": []interface{}{},
			"SubSystems": []interface{}{
				map[string]interface{}{"Component": "Ventilation", "Status": "Ok"},
			},
		},
		"Ventilation": map[string]interface{}{
			"Sensor": map[string]interface{}{
				"TempOda": leaf(108),
				"TempSup": leaf(198),
				"TempEta": leaf(195),
				"TempEha": leaf(158),
			},
			"Fan": map[string]interface{}{
				"SpeedSup":    leaf(688),
				"PressSupTgt": leaf(8),
				"PressSup":    leaf(89),
				"PwmSup":      leaf(18),
				"SpeedEha":    leaf(857),
				"PressEha":    leaf("167"),
				"PressEhaTgt": leaf(16),
				"PwmEha":      leaf(25),
			},
		},
		"HeatRecovery": map[string]interface{}{
			"General": map[string]interface{}{"TimeFilterRemain": leaf(145)},
			"Bypass":  map[string]interface{}{"Pos": leaf(49.6), "TempSupTgt": leaf(238)},
			"ProtectFrost": map[string]interface{}{
				"State":       leaf(0),
				"PressReduct": leaf(0),
			},
		},
		"NightBoost": map[string]interface{}{
			"General": map[string]interface{}{
				"TempOutsideAvg":  leaf(82),
				"FlowLvlReqZone1": leaf(0),
			},
		},
		"VentCool": map[string]interface{}{
			"General": map[string]interface{}{
				"State":      leaf(0),
				"TempInside": leaf(191),
			},
		},
	}
}

func nodesFixture() []Section {
	return []Section{
		{
			"Node": 1,
			"General": map[string]interface{}{
				"Type":        leaf("BOX"),
				"SubType":     leaf(50),
				"NetworkType": leaf("VIRT"),
				"Addr":        leaf(1),
				"SwVersion":   leaf("19156.7.7.0"),
				"SerialDuco":  leaf("P000000-000000-001"),
				"Name":        leaf(""),
				"UpTime":      leaf(10936),
			},
			"NetworkDuco": map[string]interface{}{"CommErrorCtr": leaf(0)},
			"Ventilation": map[string]interface{}{
				"State":      leaf("AUTO"),
				"Mode":       leaf("AUTO"),
				"FlowLvlTgt": leaf(30),
			},
			"Sensor": map[string]interface{}{
				"Temp":  leaf(19.7),
				"Rh":    leaf(51.34),
				"IaqRh": leaf(96),
			},
		},
		{
			"Node": 3,
			"General": map[string]interface{}{
				"Type":        leaf("UCCO2"),
				"SubType":     leaf(1),
				"NetworkType": leaf("RF"),
				"Addr":        leaf(3),
				"SwVersion":   leaf("17046.14.2.0"),
				"SerialDuco":  leaf("P000000-000000-002"),
				"Name":        leaf(""),
				"UpTime":      leaf(572),
			},
			"NetworkDuco": map[string]interface{}{
				"CommErrorCtr": leaf(0),
				"RssiRfN2M":    leaf(125),
				"HopRf":        leaf(3),
				"RssiRfN2H":    leaf(255),
			},
			"Ventilation": map[string]interface{}{
				"State": leaf("AUTO"),
				"Mode":  leaf("-"),
			},
			"Sensor": map[string]interface{}{
				"Temp":   leaf(18.8),
				"Co2":    leaf(1056),
				"IaqCo2": leaf(85),
			},
		},
	}
}

func configFixture() Section {
	return Section{
		"General": map[string]interface{}{
			"Time": map[string]interface{}{
				"TimeZone": tunableLeaf(1, -11, 12, 1),
			},
			"Setup": map[string]interface{}{
				"Complete": tunableLeaf(1, 1, 1, 1),
			},
			"Modbus": map[string]interface{}{
				"Addr": tunableLeaf(1, 1, 254, 1),
			},
			"Lan": map[string]interface{}{
				"TimeDucoClientIp": tunableLeaf(600, 0, 3600, 1),
				"Mode":             tunableLeaf(1, 0, 4, 1),
				"Dhcp":             tunableLeaf(1, 0, 1, 1),
			},
			"NodeData": map[string]interface{}{
				"UpdateRate": tunableLeaf(60, 5, 3600, 1),
			},
		},
		"Ventilation": map[string]interface{}{
			"Ctrl": map[string]interface{}{
				"TempDepThsLow": tunableLeaf(160, 100, 240, 1),
			},
		},
		"HeatRecovery": map[string]interface{}{
			"Bypass": map[string]interface{}{
				"Mode":       tunableLeaf(0, 0, 2, 1),
				"TimeFilter": tunableLeaf(180, 90, 360, 90),
			},
		},
		"NightBoost": map[string]interface{}{
			"General": map[string]interface{}{
				"Enable":    tunableLeaf(1, 0, 1, 1),
				"TempStart": tunableLeaf(24, 0, 60, 1),
			},
		},
		"VentCool": map[string]interface{}{
			"General": map[string]interface{}{
				"Mode": tunableLeaf(0, 0, 2, 1),
			},
		},
		"Firmware": map[string]interface{}{
			"General": map[string]interface{}{
				"DowngradeAllow": tunableLeaf(0, 0, 1, 1),
			},
		},
		"Azure": map[string]interface{}{
			"Connection": map[string]interface{}{
				"Enable": tunableLeaf(1, 0, 1, 1),
			},
		},
	}
}

func configNodesFixture() []Section {
	return []Section{
		{
			"Node":           1,
			"SerialBoard":    "RS0000000001",
			"FlowLvlAutoMin": tunableLeaf(30, 10, 80, 5),
			"FlowLvlAutoMax": tunableLeaf(80, 30, 100, 5),
			"Name":           leaf(""),
		},
		{
			"Node":        3,
			"SerialBoard": "RS0000000002",
			"Co2SetPoint": tunableLeaf(1400, 0, 2000, 10),
			"Name":        leaf(""),
		},
	}
}

func actionsFixture() Section {
	return Section{
		"Actions": []interface{}{
			map[string]interface{}{"Action": "ResetFilterTimeRemain", "ValType": "None"},
			map[string]interface{}{"Action": "UpdateNodeData", "ValType": "None"},
			map[string]interface{}{"Action": "ReconnectWifi", "ValType": "None"},
			map[string]interface{}{"Action": "ScanWifi", "ValType": "None"},
			map[string]interface{}{"Action": "RebootBox", "ValType": "None"},
		},
	}
}

func actionNodesFixture() Section {
	return Section{
		"Nodes": []interface{}{
			map[string]interface{}{
				"Node": 1,
				"Actions": []interface{}{
					map[string]interface{}{
						"Action": "SetVentilationState",
						"Enum":   []interface{}{"AUTO", "MAN1", "MAN2", "MAN3"},
					},
				},
			},
			map[string]interface{}{
				"Node": 3,
				"Actions": []interface{}{
					map[string]interface{}{
						"Action": "SetVentilationState",
						"Enum":   []interface{}{"AUTO", "MAN1", "MAN2", "MAN3"},
					},
				},
			},
		},
	}
}

func documentFixture() Document {
	return Document{
		SectionInfo:        map[string]interface{}(infoFixture()),
		SectionNodes:       nodesFixture(),
		SectionConfig:      map[string]interface{}(configFixture()),
		SectionConfigNodes: configNodesFixture(),
		SectionAction:      DecodeActions(actionsFixture()),
		SectionActionNodes: DecodeNodeActions(actionNodesFixture()),
	}
}
