// Package broadcast is a small in-memory, typed fan-out used to notify
// observers when the signed-in identity changes.
//
//	b := broadcast.New[Change](8)
//	sub := b.Subscribe(ctx)
//	go func() {
//	    for msg := range sub.Receive() {
//	        render(msg.Data)
//	    }
//	}()
//	b.Publish(Change{...})
//
// Publish never blocks. A subscriber whose buffer is full misses the message
// and is disconnected, so consumers must drain their channel.
package broadcast
