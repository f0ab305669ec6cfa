// Package linkclient sends requests to a KNX Link server and collects the
// response.
//
// Every request uses its own TCP connection:
//
//	Connecting ──► Sending ──► ReceivingFrame ──► Done
//	                               │    ▲
//	                               └────┘  while the last-packet flag is clear
//
// The connect, the write and every read are bounded by a fixed timeout.
// There are no retries. A non-success status ends the loop with a
// *RemoteStatusError carrying the server's message.
//
// Example:
//
//	frame, err := protocol.BuildReadRequest("1/2/3", "1.001")
//	if err != nil {
//	    return err
//	}
//	client := linkclient.New(linkclient.Config{Host: "127.0.0.1", Port: 3672})
//	result, err := client.Do(ctx, frame, func(p protocol.ResponseBody) {
//	    fmt.Printf("%s\n", p.Data)
//	})
package linkclient
