// Package mqtt provides MQTT client connectivity for knxlink.
//
// This package manages:
//   - Connection to an MQTT broker (Mosquitto or compatible)
//   - Publishing request results under {prefix}/result/{group address}
//   - Topic subscriptions with wildcard support (the monitor command)
//   - Last Will and Testament (LWT) for offline detection
//
// # Topics
//
// Group addresses contain "/", which MQTT treats as a level separator, so
// they are path-escaped into a single level:
//
//	knxlink/result/1%2F2%2F3
//	knxlink/status/knxlink-1a2b3c4d
//
// # Security Considerations
//
//   - Use TLS (cfg.Broker.TLS=true) when the broker is not on localhost
//   - Written values are published in clear text inside the payload
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.PublishResult(req.GroupAddress, payload); err != nil {
//	    return err
//	}
//
//	err = client.FollowResults(func(groupAddress string, payload []byte) error {
//	    fmt.Printf("%s %s\n", groupAddress, payload)
//	    return nil
//	})
package mqtt
