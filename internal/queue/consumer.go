package queue

import (
    "encoding/json"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartRedeemConsumer connects to RabbitMQ, declares the checkin.redeemed
// queue and consumes it, appending each event to logs/redeems.log in a
// single-line, human-friendly format.  It runs a reconnect loop with
// exponential backoff and never brings the server down: processing errors
// are logged and the offending message is rejected without requeue.
func StartRedeemConsumer() {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(brokerURL())
        if err != nil {
            log.Printf("redeem-consumer: dial failed: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeRedeems(conn); err != nil {
            log.Printf("redeem-consumer: consume loop ended: %v; reconnecting", err)
        }
        _ = conn.Close()
        time.Sleep(time.Second)
    }
}

func consumeRedeems(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(redeemedQueueName, true, false, false, false, nil); err != nil {
        return err
    }
    msgs, err := ch.Consume(redeemedQueueName, "", false, false, false, false, nil)
    if err != nil {
        return err
    }
    for d := range msgs {
        var ev CheckinRedeemedEvent
        if err := json.Unmarshal(d.Body, &ev); err != nil {
            log.Printf("redeem-consumer: bad payload: %v", err)
            _ = d.Nack(false, false)
            continue
        }
        if err := appendRedeemLog(ev); err != nil {
            log.Printf("redeem-consumer: write log failed: %v", err)
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return fmt.Errorf("delivery channel closed")
}

func appendRedeemLog(ev CheckinRedeemedEvent) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return err
    }
    f, err := os.OpenFile(filepath.Join("logs", "redeems.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return err
    }
    defer func() { _ = f.Close() }()
    line := fmt.Sprintf("%s checkin=%s user=%d venue=%s window=%s\n",
        ev.RedeemedAt, ev.CheckinID, ev.UserID, ev.VenueID, ev.WindowID)
    _, err = f.WriteString(line)
    return err
}
