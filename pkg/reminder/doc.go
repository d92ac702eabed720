// Package reminder sends renewal reminders.
//
// A Processor walks every active subscription once per day and, for the ones
// whose renewal is exactly reminder_days_before days away, records an in-app
// reminder and sends an email through a Sender. A Scheduler triggers the
// Processor at a fixed UTC hour and can hold a Redis lock so that only one
// replica does the work for a given day.
//
//	processor := reminder.NewProcessor(remindersStore, reminder.NewSender(cfg), metrics)
//	scheduler := reminder.NewScheduler(processor, func() int { return config.Get().ReminderCheckHour }, locker)
//	go scheduler.Run(ctx)
package reminder
